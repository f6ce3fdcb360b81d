package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

// 支払い方法の設定値
type PaymentSettings struct {
	CODEnabled          bool
	CODFee              int64
	BankTransferEnabled bool
}

// リクエスト時にsettingsテーブルから設定を解決する。
// キーが無いときはゼロ値（支払い方法は無効扱い）
type SettingsResolver struct {
	settings repo.SettingRepository
}

func NewSettingsResolver(settings repo.SettingRepository) *SettingsResolver {
	return &SettingsResolver{settings: settings}
}

func (r *SettingsResolver) Shipping(ctx context.Context) (ShippingSettings, error) {
	var out ShippingSettings

	threshold, err := r.int64Value(ctx, model.SettingGroupShipping, model.SettingKeyFreeShippingThreshold)
	if err != nil {
		return ShippingSettings{}, err
	}
	cost, err := r.int64Value(ctx, model.SettingGroupShipping, model.SettingKeyDefaultShippingCost)
	if err != nil {
		return ShippingSettings{}, err
	}

	out.FreeShippingThreshold = threshold
	out.DefaultCost = cost
	return out, nil
}

func (r *SettingsResolver) Payment(ctx context.Context) (PaymentSettings, error) {
	var out PaymentSettings

	codEnabled, err := r.boolValue(ctx, model.SettingGroupPayment, model.SettingKeyCODEnabled)
	if err != nil {
		return PaymentSettings{}, err
	}
	codFee, err := r.int64Value(ctx, model.SettingGroupPayment, model.SettingKeyCODFee)
	if err != nil {
		return PaymentSettings{}, err
	}
	btEnabled, err := r.boolValue(ctx, model.SettingGroupPayment, model.SettingKeyBankTransferEnabled)
	if err != nil {
		return PaymentSettings{}, err
	}

	out.CODEnabled = codEnabled
	out.CODFee = codFee
	out.BankTransferEnabled = btEnabled
	return out, nil
}

func (r *SettingsResolver) int64Value(ctx context.Context, group string, key string) (int64, error) {
	s, err := r.settings.FindByGroupKey(ctx, group, key)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	v, parseErr := strconv.ParseInt(s.Value, 10, 64)
	if parseErr != nil {
		//設定が壊れている場合はゼロ扱いにせずエラーにする
		return 0, NewHTTPError(http.StatusInternalServerError, "invalid setting: "+group+"."+key)
	}
	return v, nil
}

func (r *SettingsResolver) boolValue(ctx context.Context, group string, key string) (bool, error) {
	s, err := r.settings.FindByGroupKey(ctx, group, key)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s.Value == "true" || s.Value == "1", nil
}
