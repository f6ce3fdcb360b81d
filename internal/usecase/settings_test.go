package usecase_test

import (
	"context"
	"testing"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
	"genstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSettingsResolver_Shipping_MissingKeysAreZero(t *testing.T) {
	settings := new(SettingRepoMock)

	// キー未設定はゼロ値扱い（送料無料しきい値0 = 常に無料）
	settings.On("FindByGroupKey", mock.Anything, model.SettingGroupShipping, model.SettingKeyFreeShippingThreshold).
		Return(model.Setting{}, repo.ErrNotFound)
	settings.On("FindByGroupKey", mock.Anything, model.SettingGroupShipping, model.SettingKeyDefaultShippingCost).
		Return(model.Setting{}, repo.ErrNotFound)

	r := usecase.NewSettingsResolver(settings)

	out, err := r.Shipping(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.FreeShippingThreshold)
	assert.Equal(t, int64(0), out.DefaultCost)
}

func TestSettingsResolver_Shipping_ReadsValues(t *testing.T) {
	settings := new(SettingRepoMock)

	settings.On("FindByGroupKey", mock.Anything, model.SettingGroupShipping, model.SettingKeyFreeShippingThreshold).
		Return(model.Setting{Value: "50000"}, nil)
	settings.On("FindByGroupKey", mock.Anything, model.SettingGroupShipping, model.SettingKeyDefaultShippingCost).
		Return(model.Setting{Value: "500"}, nil)

	r := usecase.NewSettingsResolver(settings)

	out, err := r.Shipping(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(50000), out.FreeShippingThreshold)
	assert.Equal(t, int64(500), out.DefaultCost)
}

func TestSettingsResolver_Shipping_BrokenValueIsError(t *testing.T) {
	settings := new(SettingRepoMock)

	settings.On("FindByGroupKey", mock.Anything, model.SettingGroupShipping, model.SettingKeyFreeShippingThreshold).
		Return(model.Setting{Value: "abc"}, nil)

	r := usecase.NewSettingsResolver(settings)

	_, err := r.Shipping(context.Background())
	assertErrContains(t, err, "invalid setting")
}

func TestSettingsResolver_Payment_MissingKeysDisablePayments(t *testing.T) {
	settings := new(SettingRepoMock)

	settings.On("FindByGroupKey", mock.Anything, model.SettingGroupPayment, mock.Anything).
		Return(model.Setting{}, repo.ErrNotFound)

	r := usecase.NewSettingsResolver(settings)

	out, err := r.Payment(context.Background())
	assert.NoError(t, err)
	assert.False(t, out.CODEnabled)
	assert.False(t, out.BankTransferEnabled)
	assert.Equal(t, int64(0), out.CODFee)
}

func TestSettingsResolver_Payment_ReadsValues(t *testing.T) {
	settings := new(SettingRepoMock)

	settings.On("FindByGroupKey", mock.Anything, model.SettingGroupPayment, model.SettingKeyCODEnabled).
		Return(model.Setting{Value: "true"}, nil)
	settings.On("FindByGroupKey", mock.Anything, model.SettingGroupPayment, model.SettingKeyCODFee).
		Return(model.Setting{Value: "300"}, nil)
	settings.On("FindByGroupKey", mock.Anything, model.SettingGroupPayment, model.SettingKeyBankTransferEnabled).
		Return(model.Setting{Value: "false"}, nil)

	r := usecase.NewSettingsResolver(settings)

	out, err := r.Payment(context.Background())
	assert.NoError(t, err)
	assert.True(t, out.CODEnabled)
	assert.Equal(t, int64(300), out.CODFee)
	assert.False(t, out.BankTransferEnabled)
}
