package model

import "time"

type SettingType string

const (
	SettingTypeString  SettingType = "STRING"
	SettingTypeNumber  SettingType = "NUMBER"
	SettingTypeBoolean SettingType = "BOOLEAN"
)

// サイト設定のキーバリュー。groupごとにまとめて読み書きする
type Setting struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Group     string      `gorm:"column:setting_group;type:varchar(50);not null;uniqueIndex:idx_settings_group_key" json:"group"`
	Key       string      `gorm:"type:varchar(100);not null;uniqueIndex:idx_settings_group_key" json:"key"`
	Value     string      `gorm:"type:text;not null" json:"value"`
	ValueType SettingType `gorm:"type:varchar(10);not null;default:'STRING'" json:"value_type"`
	UpdatedAt time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// shippingグループのキー
const (
	SettingKeyFreeShippingThreshold = "free_shipping_threshold"
	SettingKeyDefaultShippingCost   = "default_shipping_cost"
)

// paymentグループのキー
const (
	SettingKeyCODEnabled          = "cod_enabled"
	SettingKeyCODFee              = "cod_fee"
	SettingKeyBankTransferEnabled = "bank_transfer_enabled"
)

const (
	SettingGroupGeneral  = "general"
	SettingGroupShipping = "shipping"
	SettingGroupPayment  = "payment"
)
