package repository

import (
	"context"
	"errors"
	"time"

	"genstore/internal/domain/model"
)

// idempotency keyの一意制約違反
var ErrDuplicateKey = errors.New("duplicate key")

type AdminOrderListFilter struct {
	Page          int
	Limit         int
	Status        string
	PaymentStatus string
	UserID        *int64
	From          *time.Time
	To            *time.Time
}

// 管理者の注文更新（nilの項目は変更しない）
type OrderAdminPatch struct {
	Status         *model.OrderStatus
	PaymentStatus  *model.PaymentStatus
	TrackingNumber *string
	Carrier        *string
	AdminNotes     *string
	InternalNotes  *string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateAdmin(ctx context.Context, orderID int64, patch OrderAdminPatch) error

	//同じキーなら同じ注文を返す（二重送信対策）
	FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
