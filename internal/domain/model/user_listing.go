package model

import "time"

type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "PENDING"
	ListingStatusApproved ListingStatus = "APPROVED"
	ListingStatusRejected ListingStatus = "REJECTED"
	ListingStatusSold     ListingStatus = "SOLD"
	ListingStatusExpired  ListingStatus = "EXPIRED"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusPending, ListingStatusApproved, ListingStatusRejected,
		ListingStatusSold, ListingStatusExpired:
		return true
	}
	return false
}

func (s ListingStatus) Frozen() bool {
	return s == ListingStatusRejected || s == ListingStatusSold || s == ListingStatusExpired
}

// 「発電機を売りたい」ユーザー出品
type UserListing struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	Brand     string `gorm:"type:varchar(100);not null" json:"brand"`
	Model     string `gorm:"type:varchar(100);not null" json:"model"`
	Year      int    `gorm:"not null;default:0" json:"year"`
	Condition string `gorm:"type:varchar(50)" json:"condition"`

	//稼働時間（時間）
	RunningHours int64 `gorm:"not null;default:0" json:"running_hours"`

	AskingPrice int64  `gorm:"not null" json:"asking_price"`
	Description string `gorm:"type:text" json:"description"`
	ImageURLs   string `gorm:"type:text" json:"image_urls"`

	ContactPhone string `gorm:"type:varchar(30)" json:"contact_phone"`

	Status ListingStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//REJECTED時は必須
	RejectionReason string `gorm:"type:text" json:"rejection_reason"`

	//SOLD時は必須（管理者が買い取った金額）
	PurchasedPrice *int64 `json:"purchased_price"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
