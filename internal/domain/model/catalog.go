package model

import "time"

// 商品の種別（発電機 or 部品）
type ItemType string

const (
	ItemTypeGenerator ItemType = "GENERATOR"
	ItemTypePart      ItemType = "PART"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeGenerator || t == ItemTypePart
}

type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

type Brand struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 商品画像（発電機・部品の両方で使う）
type ProductImage struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerType ItemType `gorm:"type:varchar(20);not null;index:idx_product_images_owner" json:"owner_type"`
	OwnerID   int64    `gorm:"not null;index:idx_product_images_owner" json:"owner_id"`
	URL       string   `gorm:"type:varchar(1024);not null" json:"url"`
	SortOrder int      `gorm:"not null;default:0" json:"sort_order"`

	//メイン画像は1商品につき1枚だけ
	IsPrimary bool `gorm:"not null;default:false" json:"is_primary"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
