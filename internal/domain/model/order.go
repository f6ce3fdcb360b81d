package model

import "time"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusRefunded       OrderStatus = "REFUNDED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusOutForDelivery, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// 出荷前（キャンセル時に在庫を戻す範囲）
func (s OrderStatus) BeforeShipment() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
		return true
	}
	return false
}

// これ以上変更できない状態か。DELIVEREDだけは返金にできる
func (s OrderStatus) Frozen() bool {
	return s == OrderStatusCancelled || s == OrderStatusRefunded
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "CASH_ON_DELIVERY"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodBankTransfer
}

// 注文。配送先はユーザー/住所を参照せず作成時点のスナップショットを持つ
type Order struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string `gorm:"type:varchar(40);not null;uniqueIndex" json:"order_number"`
	UserID      int64  `gorm:"not null;index" json:"user_id"`

	ShippingName        string `gorm:"type:varchar(255);not null" json:"shipping_name"`
	ShippingPhone       string `gorm:"type:varchar(30);not null" json:"shipping_phone"`
	ShippingEmail       string `gorm:"type:varchar(255)" json:"shipping_email"`
	ShippingAddressLine string `gorm:"type:varchar(255);not null" json:"shipping_address_line"`
	ShippingCity        string `gorm:"type:varchar(255);not null" json:"shipping_city"`
	ShippingState       string `gorm:"type:varchar(100)" json:"shipping_state"`
	ShippingPostalCode  string `gorm:"type:varchar(20)" json:"shipping_postal_code"`
	ShippingCountry     string `gorm:"type:varchar(100)" json:"shipping_country"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(30);not null" json:"payment_method"`
	CustomerNotes string        `gorm:"type:text" json:"customer_notes"`
	CouponCode    string        `gorm:"type:varchar(50)" json:"coupon_code"`

	//金額内訳。total = subtotal + shipping_cost + cod_fee - discount
	Subtotal     int64 `gorm:"not null" json:"subtotal"`
	ShippingCost int64 `gorm:"not null" json:"shipping_cost"`
	CODFee       int64 `gorm:"column:cod_fee;not null" json:"cod_fee"`
	Discount     int64 `gorm:"not null" json:"discount"`
	Total        int64 `gorm:"not null" json:"total"`

	Status        OrderStatus   `gorm:"type:varchar(30);not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;index" json:"payment_status"`

	TrackingNumber string `gorm:"type:varchar(100)" json:"tracking_number"`
	Carrier        string `gorm:"type:varchar(100)" json:"carrier"`
	AdminNotes     string `gorm:"type:text" json:"admin_notes"`
	InternalNotes  string `gorm:"type:text" json:"-"`

	IdempotencyKey string `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
