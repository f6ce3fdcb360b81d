package model

import "time"

// 管理者操作の種類
type AuditAction string

const (
	AuditActionUpdateOrder      AuditAction = "UPDATE_ORDER"
	AuditActionUpdateService    AuditAction = "UPDATE_SERVICE_REQUEST"
	AuditActionDecideListing    AuditAction = "DECIDE_LISTING"
	AuditActionCreateUser       AuditAction = "CREATE_USER"
	AuditActionUpdateUser       AuditAction = "UPDATE_USER"
	AuditActionUpdateSettings   AuditAction = "UPDATE_SETTINGS"
	AuditActionCreateProduct    AuditAction = "CREATE_PRODUCT"
	AuditActionUpdateProduct    AuditAction = "UPDATE_PRODUCT"
	AuditActionDeleteProduct    AuditAction = "DELETE_PRODUCT"
	AuditActionUpdateStock      AuditAction = "UPDATE_STOCK"
	AuditActionCreateCoupon     AuditAction = "CREATE_COUPON"
	AuditActionUpdateCoupon     AuditAction = "UPDATE_COUPON"
	AuditActionDeleteCoupon     AuditAction = "DELETE_COUPON"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder     AuditResourceType = "order"
	AuditResourceService   AuditResourceType = "service_request"
	AuditResourceListing   AuditResourceType = "user_listing"
	AuditResourceUser      AuditResourceType = "user"
	AuditResourceSetting   AuditResourceType = "setting"
	AuditResourceGenerator AuditResourceType = "generator"
	AuditResourcePart      AuditResourceType = "part"
	AuditResourceCoupon    AuditResourceType = "coupon"
)

// 監査ログ。「誰が」「何を」「どの対象に」「どう変えたか」を残す
type AuditLog struct {
	ID          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID int64 `gorm:"not null;index" json:"actor_user_id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//変更前後のスナップショット（JSON文字列）
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
