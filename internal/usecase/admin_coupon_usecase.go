package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type AdminCouponUsecase struct {
	coupons   repo.CouponRepository
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminCouponUsecase(coupons repo.CouponRepository, auditRepo repo.AuditLogRepository, clock Clock) *AdminCouponUsecase {
	return &AdminCouponUsecase{coupons: coupons, auditRepo: auditRepo, clock: clock}
}

type CouponInput struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue int64   `json:"discount_value"`
	MinSubtotal   int64   `json:"min_subtotal"`
	ValidFrom     *string `json:"valid_from"`
	ValidUntil    *string `json:"valid_until"`
	IsActive      bool    `json:"is_active"`
}

type CouponListOutput struct {
	Items []model.Coupon `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (in CouponInput) toModel() (model.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "code is required")
	}
	dt := model.DiscountType(strings.ToUpper(in.DiscountType))
	if !dt.Valid() {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid discount_type")
	}
	if in.DiscountValue <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "discount_value must be positive")
	}
	if dt == model.DiscountTypePercentage && in.DiscountValue > 100 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "percentage cannot exceed 100")
	}
	if in.MinSubtotal < 0 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid min_subtotal")
	}

	c := model.Coupon{
		Code:          code,
		DiscountType:  dt,
		DiscountValue: in.DiscountValue,
		MinSubtotal:   in.MinSubtotal,
		IsActive:      in.IsActive,
	}

	if in.ValidFrom != nil {
		t, err := time.Parse(time.RFC3339, *in.ValidFrom)
		if err != nil {
			return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid valid_from")
		}
		c.ValidFrom = &t
	}
	if in.ValidUntil != nil {
		t, err := time.Parse(time.RFC3339, *in.ValidUntil)
		if err != nil {
			return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid valid_until")
		}
		c.ValidUntil = &t
	}
	if c.ValidFrom != nil && c.ValidUntil != nil && c.ValidUntil.Before(*c.ValidFrom) {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "valid_until must be after valid_from")
	}
	return c, nil
}

func (u *AdminCouponUsecase) List(ctx context.Context, page int, limit int) (CouponListOutput, error) {
	if page < 1 {
		return CouponListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return CouponListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	items, total, err := u.coupons.List(ctx, page, limit)
	if err != nil {
		return CouponListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return CouponListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (u *AdminCouponUsecase) Get(ctx context.Context, id int64) (model.Coupon, error) {
	if id <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	c, err := u.coupons.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "coupon not found")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *AdminCouponUsecase) Create(ctx context.Context, actorAdminUserID int64, in CouponInput) (model.Coupon, error) {
	if actorAdminUserID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	c, err := in.toModel()
	if err != nil {
		return model.Coupon{}, err
	}

	if _, err := u.coupons.FindByCode(ctx, c.Code); err == nil {
		return model.Coupon{}, NewHTTPError(http.StatusConflict, "coupon code already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.coupons.Create(ctx, c)
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionCreateCoupon, created.ID, "", couponAuditJSON(created))
	return created, nil
}

func (u *AdminCouponUsecase) Update(ctx context.Context, actorAdminUserID int64, id int64, in CouponInput) (model.Coupon, error) {
	if actorAdminUserID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	c, err := in.toModel()
	if err != nil {
		return model.Coupon{}, err
	}

	old, err := u.coupons.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "coupon not found")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//コード変更は重複チェック
	if c.Code != old.Code {
		if _, err := u.coupons.FindByCode(ctx, c.Code); err == nil {
			return model.Coupon{}, NewHTTPError(http.StatusConflict, "coupon code already exists")
		} else if !errors.Is(err, repo.ErrNotFound) {
			return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	c.ID = id
	if err := u.coupons.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Coupon{}, NewHTTPError(http.StatusNotFound, "coupon not found")
		}
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionUpdateCoupon, id, couponAuditJSON(old), couponAuditJSON(c))
	return c, nil
}

func (u *AdminCouponUsecase) Delete(ctx context.Context, actorAdminUserID int64, id int64) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.coupons.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "coupon not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	u.audit(ctx, actorAdminUserID, model.AuditActionDeleteCoupon, id, "", "")
	return nil
}

func couponAuditJSON(c model.Coupon) string {
	b, _ := json.Marshal(map[string]interface{}{
		"code":           c.Code,
		"discount_type":  c.DiscountType,
		"discount_value": c.DiscountValue,
		"min_subtotal":   c.MinSubtotal,
		"is_active":      c.IsActive,
	})
	return string(b)
}

func (u *AdminCouponUsecase) audit(ctx context.Context, actorID int64, action model.AuditAction, id int64, before string, after string) {
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceCoupon,
		ResourceID:   id,
		BeforeJSON:   before,
		AfterJSON:    after,
		CreatedAt:    u.clock.Now(),
	})
}
