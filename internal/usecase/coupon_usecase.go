package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type CouponOutput struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discount_type"`
	DiscountValue int64  `json:"discount_value"`
}

type ValidateCouponOutput struct {
	Coupon   CouponOutput `json:"coupon"`
	Discount int64        `json:"discount"`
}

type CouponUsecase struct {
	coupons repo.CouponRepository
	clock   Clock
}

func NewCouponUsecase(coupons repo.CouponRepository, clock Clock) *CouponUsecase {
	return &CouponUsecase{coupons: coupons, clock: clock}
}

// Validate はクーポンを検証して割引額を返す。使用回数は数えない（検証のみ）
func (u *CouponUsecase) Validate(ctx context.Context, code string, subtotal int64) (ValidateCouponOutput, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return ValidateCouponOutput{}, NewHTTPError(http.StatusBadRequest, "invalid coupon code")
	}
	if subtotal < 0 {
		return ValidateCouponOutput{}, NewHTTPError(http.StatusBadRequest, "invalid subtotal")
	}

	c, err := u.coupons.FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return ValidateCouponOutput{}, NewHTTPError(http.StatusNotFound, "coupon not found")
	}
	if err != nil {
		return ValidateCouponOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := checkCouponUsable(c, subtotal, u.clock.Now()); err != nil {
		return ValidateCouponOutput{}, err
	}

	applied := &AppliedCoupon{Type: c.DiscountType, Value: c.DiscountValue}
	discount := QuotePrice(subtotal, ShippingSettings{}, model.PaymentMethodBankTransfer, 0, applied).Discount

	return ValidateCouponOutput{
		Coupon: CouponOutput{
			Code:          c.Code,
			DiscountType:  string(c.DiscountType),
			DiscountValue: c.DiscountValue,
		},
		Discount: discount,
	}, nil
}

// checkCouponUsable は有効期間・最低小計のルールだけを見る
func checkCouponUsable(c model.Coupon, subtotal int64, now time.Time) error {
	if !c.IsActive {
		return NewHTTPError(http.StatusBadRequest, "coupon not active")
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return NewHTTPError(http.StatusBadRequest, "coupon expired")
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return NewHTTPError(http.StatusBadRequest, "coupon expired")
	}
	if subtotal < c.MinSubtotal {
		return NewHTTPError(http.StatusBadRequest, "minimum subtotal not met")
	}
	return nil
}
