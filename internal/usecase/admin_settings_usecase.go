package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type AdminSettingsUsecase struct {
	settings  repo.SettingRepository
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminSettingsUsecase(settings repo.SettingRepository, auditRepo repo.AuditLogRepository, clock Clock) *AdminSettingsUsecase {
	return &AdminSettingsUsecase{settings: settings, auditRepo: auditRepo, clock: clock}
}

// 既知キーの型。ここに無いキーはSTRING扱い
var settingTypes = map[string]model.SettingType{
	model.SettingGroupShipping + "." + model.SettingKeyFreeShippingThreshold: model.SettingTypeNumber,
	model.SettingGroupShipping + "." + model.SettingKeyDefaultShippingCost:   model.SettingTypeNumber,
	model.SettingGroupPayment + "." + model.SettingKeyCODEnabled:             model.SettingTypeBoolean,
	model.SettingGroupPayment + "." + model.SettingKeyCODFee:                 model.SettingTypeNumber,
	model.SettingGroupPayment + "." + model.SettingKeyBankTransferEnabled:    model.SettingTypeBoolean,
}

func settingType(group string, key string) model.SettingType {
	if t, ok := settingTypes[group+"."+key]; ok {
		return t
	}
	return model.SettingTypeString
}

func validGroup(group string) bool {
	switch group {
	case model.SettingGroupGeneral, model.SettingGroupShipping, model.SettingGroupPayment:
		return true
	}
	return false
}

// GetAll は {group: {key: value}} の形で返す
func (u *AdminSettingsUsecase) GetAll(ctx context.Context) (map[string]map[string]string, error) {
	all, err := u.settings.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := map[string]map[string]string{}
	for _, s := range all {
		if out[s.Group] == nil {
			out[s.Group] = map[string]string{}
		}
		out[s.Group][s.Key] = s.Value
	}
	return out, nil
}

func (u *AdminSettingsUsecase) GetGroup(ctx context.Context, group string) (map[string]string, error) {
	if !validGroup(group) {
		return nil, NewHTTPError(http.StatusNotFound, "unknown setting group")
	}
	list, err := u.settings.ListByGroup(ctx, group)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out := map[string]string{}
	for _, s := range list {
		out[s.Key] = s.Value
	}
	return out, nil
}

// UpdateGroup はグループ単位のまとめ書き
func (u *AdminSettingsUsecase) UpdateGroup(ctx context.Context, actorAdminUserID int64, group string, values map[string]string) error {
	return u.UpdateAll(ctx, actorAdminUserID, map[string]map[string]string{group: values})
}

// UpdateAll は {group: {key: value}} をまとめて書き込む。
// 全グループ・全キーを検証してから保存する（途中で失敗して一部だけ書かれる状態を作らない）
func (u *AdminSettingsUsecase) UpdateAll(ctx context.Context, actorAdminUserID int64, groups map[string]map[string]string) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(groups) == 0 {
		return NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	//先に全部を検証する
	for group, values := range groups {
		if !validGroup(group) {
			return NewHTTPError(http.StatusNotFound, "unknown setting group")
		}
		if len(values) == 0 {
			return NewHTTPError(http.StatusBadRequest, "nothing to update")
		}
		for key, value := range values {
			key = strings.TrimSpace(key)
			if key == "" {
				return NewHTTPError(http.StatusBadRequest, "invalid setting key")
			}
			switch settingType(group, key) {
			case model.SettingTypeNumber:
				if _, err := strconv.ParseInt(value, 10, 64); err != nil {
					return NewHTTPError(http.StatusBadRequest, "invalid number for "+key)
				}
			case model.SettingTypeBoolean:
				if _, err := strconv.ParseBool(value); err != nil {
					return NewHTTPError(http.StatusBadRequest, "invalid boolean for "+key)
				}
			}
		}
	}

	beforeMap := map[string]map[string]string{}
	for group := range groups {
		m, err := u.GetGroup(ctx, group)
		if err != nil {
			return err
		}
		beforeMap[group] = m
	}

	for group, values := range groups {
		for key, value := range values {
			s := model.Setting{
				Group:     group,
				Key:       key,
				Value:     value,
				ValueType: settingType(group, key),
			}
			if err := u.settings.Upsert(ctx, s); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
	}

	before, _ := json.Marshal(beforeMap)
	after, _ := json.Marshal(groups)
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpdateSettings,
		ResourceType: model.AuditResourceSetting,
		ResourceID:   0,
		BeforeJSON:   string(before),
		AfterJSON:    string(after),
		CreatedAt:    u.clock.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
