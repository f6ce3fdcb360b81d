package usecase_test

import (
	"context"
	"errors"
	"testing"

	"genstore/internal/domain/model"
	"genstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSettingsUsecaseForTest(settings *SettingRepoMock, audit *AuditRepoMock) *usecase.AdminSettingsUsecase {
	return usecase.NewAdminSettingsUsecase(settings, audit, &fixedClock{t: testNow})
}

func TestUpdateSettingsGroup_Success_WritesAudit(t *testing.T) {
	settings := new(SettingRepoMock)
	audit := new(AuditRepoMock)
	uc := newSettingsUsecaseForTest(settings, audit)

	settings.On("ListByGroup", mock.Anything, "payment").
		Return([]model.Setting{{Group: "payment", Key: "cod_fee", Value: "500"}}, nil)
	settings.On("Upsert", mock.Anything, mock.MatchedBy(func(s model.Setting) bool {
		return s.Group == "payment" && s.Key == "cod_fee" && s.Value == "800" && s.ValueType == model.SettingTypeNumber
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateSettings && l.ActorUserID == 99
	})).Return(nil)

	err := uc.UpdateGroup(context.Background(), 99, "payment", map[string]string{"cod_fee": "800"})
	assert.NoError(t, err)
	settings.AssertExpectations(t)
	audit.AssertExpectations(t)
}

// 型が登録されていないキーはSTRINGとしてそのまま保存する
func TestUpdateSettingsGroup_UnknownKeyStoredAsString(t *testing.T) {
	settings := new(SettingRepoMock)
	audit := new(AuditRepoMock)
	uc := newSettingsUsecaseForTest(settings, audit)

	settings.On("ListByGroup", mock.Anything, "general").Return([]model.Setting{}, nil)
	settings.On("Upsert", mock.Anything, mock.MatchedBy(func(s model.Setting) bool {
		return s.Group == "general" && s.Key == "support_phone" && s.ValueType == model.SettingTypeString
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.UpdateGroup(context.Background(), 99, "general", map[string]string{"support_phone": "03-1234-5678"})
	assert.NoError(t, err)
	settings.AssertExpectations(t)
}

func TestUpdateSettingsGroup_BadNumber(t *testing.T) {
	settings := new(SettingRepoMock)
	uc := newSettingsUsecaseForTest(settings, new(AuditRepoMock))

	err := uc.UpdateGroup(context.Background(), 99, "payment", map[string]string{"cod_fee": "abc"})
	assertErrContains(t, err, "invalid number for cod_fee")

	settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateSettingsGroup_BadBoolean(t *testing.T) {
	settings := new(SettingRepoMock)
	uc := newSettingsUsecaseForTest(settings, new(AuditRepoMock))

	err := uc.UpdateGroup(context.Background(), 99, "payment", map[string]string{"cod_enabled": "yes please"})
	assertErrContains(t, err, "invalid boolean for cod_enabled")

	settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateSettingsGroup_UnknownGroup(t *testing.T) {
	settings := new(SettingRepoMock)
	uc := newSettingsUsecaseForTest(settings, new(AuditRepoMock))

	err := uc.UpdateGroup(context.Background(), 99, "secret", map[string]string{"k": "v"})
	assertErrContains(t, err, "unknown setting group")

	settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

// 複数グループをまとめて書く時、1つでも不正なグループがあれば何も書かない
func TestUpdateSettingsAll_BadGroupWritesNothing(t *testing.T) {
	settings := new(SettingRepoMock)
	uc := newSettingsUsecaseForTest(settings, new(AuditRepoMock))

	err := uc.UpdateAll(context.Background(), 99, map[string]map[string]string{
		"payment": {"cod_fee": "800"},
		"secret":  {"k": "v"},
	})
	assertErrContains(t, err, "unknown setting group")

	settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateSettingsAll_Empty(t *testing.T) {
	uc := newSettingsUsecaseForTest(new(SettingRepoMock), new(AuditRepoMock))

	err := uc.UpdateAll(context.Background(), 99, map[string]map[string]string{})
	assertErrContains(t, err, "nothing to update")
}

func TestUpdateSettingsGroup_AuditFailureIsError(t *testing.T) {
	settings := new(SettingRepoMock)
	audit := new(AuditRepoMock)
	uc := newSettingsUsecaseForTest(settings, audit)

	settings.On("ListByGroup", mock.Anything, "payment").Return([]model.Setting{}, nil)
	settings.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	err := uc.UpdateGroup(context.Background(), 99, "payment", map[string]string{"cod_fee": "800"})
	assertErrContains(t, err, "db error")
}
