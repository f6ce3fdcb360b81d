package model

import "time"

type OrderItem struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64    `gorm:"not null;index" json:"order_id"`
	ItemType  ItemType `gorm:"type:varchar(20);not null" json:"item_type"`
	ProductID int64    `gorm:"not null;index" json:"product_id"`

	//購入時点のスナップショット（商品が変わっても注文履歴は変わらない）
	ProductNameSnapshot string `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceSnapshot   int64  `gorm:"not null" json:"unit_price_snapshot"`

	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
