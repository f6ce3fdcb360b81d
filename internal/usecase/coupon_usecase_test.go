package usecase_test

import (
	"context"
	"testing"
	"time"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
	"genstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCouponValidate_EmptyCode(t *testing.T) {
	coupons := new(CouponRepoMock)
	uc := usecase.NewCouponUsecase(coupons, &fixedClock{t: testNow})

	_, err := uc.Validate(context.Background(), "  ", 1000)
	assertErrContains(t, err, "invalid coupon code")
}

func TestCouponValidate_NotFound(t *testing.T) {
	coupons := new(CouponRepoMock)
	coupons.On("FindByCode", mock.Anything, "NOPE").Return(model.Coupon{}, repo.ErrNotFound)

	uc := usecase.NewCouponUsecase(coupons, &fixedClock{t: testNow})

	_, err := uc.Validate(context.Background(), "NOPE", 1000)
	assertErrContains(t, err, "coupon not found")
}

func TestCouponValidate_Inactive(t *testing.T) {
	coupons := new(CouponRepoMock)
	coupons.On("FindByCode", mock.Anything, "OFF").Return(model.Coupon{
		Code: "OFF", DiscountType: model.DiscountTypeFixed, DiscountValue: 500, IsActive: false,
	}, nil)

	uc := usecase.NewCouponUsecase(coupons, &fixedClock{t: testNow})

	_, err := uc.Validate(context.Background(), "OFF", 1000)
	assertErrContains(t, err, "coupon not active")
}

func TestCouponValidate_Expired(t *testing.T) {
	until := testNow.Add(-time.Hour)

	coupons := new(CouponRepoMock)
	coupons.On("FindByCode", mock.Anything, "OLD").Return(model.Coupon{
		Code: "OLD", DiscountType: model.DiscountTypeFixed, DiscountValue: 500,
		IsActive: true, ValidUntil: &until,
	}, nil)

	uc := usecase.NewCouponUsecase(coupons, &fixedClock{t: testNow})

	_, err := uc.Validate(context.Background(), "OLD", 1000)
	assertErrContains(t, err, "coupon expired")
}

func TestCouponValidate_NotYetValid(t *testing.T) {
	from := testNow.Add(time.Hour)

	coupons := new(CouponRepoMock)
	coupons.On("FindByCode", mock.Anything, "SOON").Return(model.Coupon{
		Code: "SOON", DiscountType: model.DiscountTypeFixed, DiscountValue: 500,
		IsActive: true, ValidFrom: &from,
	}, nil)

	uc := usecase.NewCouponUsecase(coupons, &fixedClock{t: testNow})

	_, err := uc.Validate(context.Background(), "SOON", 1000)
	assertErrContains(t, err, "coupon expired")
}

func TestCouponValidate_MinSubtotalNotMet(t *testing.T) {
	coupons := new(CouponRepoMock)
	coupons.On("FindByCode", mock.Anything, "BIG").Return(model.Coupon{
		Code: "BIG", DiscountType: model.DiscountTypeFixed, DiscountValue: 2000,
		MinSubtotal: 10000, IsActive: true,
	}, nil)

	uc := usecase.NewCouponUsecase(coupons, &fixedClock{t: testNow})

	_, err := uc.Validate(context.Background(), "BIG", 9999)
	assertErrContains(t, err, "minimum subtotal not met")
}

func TestCouponValidate_Success_Percentage(t *testing.T) {
	coupons := new(CouponRepoMock)
	coupons.On("FindByCode", mock.Anything, "P10").Return(model.Coupon{
		Code: "P10", DiscountType: model.DiscountTypePercentage, DiscountValue: 10,
		IsActive: true,
	}, nil)

	uc := usecase.NewCouponUsecase(coupons, &fixedClock{t: testNow})

	out, err := uc.Validate(context.Background(), "P10", 20000)
	assert.NoError(t, err)
	assert.Equal(t, "P10", out.Coupon.Code)
	assert.Equal(t, int64(2000), out.Discount)
}

func TestCouponValidate_Success_Fixed(t *testing.T) {
	coupons := new(CouponRepoMock)
	coupons.On("FindByCode", mock.Anything, "F2000").Return(model.Coupon{
		Code: "F2000", DiscountType: model.DiscountTypeFixed, DiscountValue: 2000,
		MinSubtotal: 10000, IsActive: true,
	}, nil)

	uc := usecase.NewCouponUsecase(coupons, &fixedClock{t: testNow})

	out, err := uc.Validate(context.Background(), "F2000", 20000)
	assert.NoError(t, err)
	assert.Equal(t, int64(2000), out.Discount)
}
