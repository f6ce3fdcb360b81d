package repository

import (
	"context"

	"genstore/internal/domain/model"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (model.Coupon, error)
	FindByID(ctx context.Context, id int64) (model.Coupon, error)
	List(ctx context.Context, page int, limit int) ([]model.Coupon, int64, error)
	Create(ctx context.Context, c model.Coupon) (model.Coupon, error)
	Update(ctx context.Context, c model.Coupon) error
	Delete(ctx context.Context, id int64) error
}
