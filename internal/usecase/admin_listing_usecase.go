package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type AdminListingUsecase struct {
	listings  repo.UserListingRepository
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminListingUsecase(listings repo.UserListingRepository, auditRepo repo.AuditLogRepository, clock Clock) *AdminListingUsecase {
	return &AdminListingUsecase{listings: listings, auditRepo: auditRepo, clock: clock}
}

type ListingDecisionInput struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
	PurchasedPrice  *int64 `json:"purchased_price"`
}

func (u *AdminListingUsecase) List(ctx context.Context, f repo.ListingListFilter) ([]ListingOutput, int64, error) {
	if f.Page < 1 {
		return []ListingOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []ListingOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	list, total, err := u.listings.ListAdmin(ctx, f)
	if err != nil {
		return []ListingOutput{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ListingOutput, 0, len(list))
	for _, l := range list {
		outs = append(outs, toListingOutput(l))
	}
	return outs, total, nil
}

func (u *AdminListingUsecase) Get(ctx context.Context, id int64) (ListingOutput, error) {
	if id <= 0 {
		return ListingOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	l, err := u.listings.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ListingOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ListingOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toListingOutput(l), nil
}

// Decide は出品の判断。
// REJECTEDには理由が、SOLDには買取金額が必須（サーバ側で強制する）
func (u *AdminListingUsecase) Decide(ctx context.Context, actorAdminUserID int64, id int64, in ListingDecisionInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.ListingStatus(in.Status)
	if !newStatus.Valid() || newStatus == model.ListingStatusPending {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	l, err := u.listings.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if l.Status.Frozen() {
		return NewHTTPError(http.StatusBadRequest, "listing already decided")
	}

	decision := repo.ListingDecision{Status: newStatus}

	switch newStatus {
	case model.ListingStatusApproved:
		if l.Status != model.ListingStatusPending {
			return NewHTTPError(http.StatusBadRequest, "only pending listings can be approved")
		}

	case model.ListingStatusRejected:
		if l.Status != model.ListingStatusPending {
			return NewHTTPError(http.StatusBadRequest, "only pending listings can be rejected")
		}
		if strings.TrimSpace(in.RejectionReason) == "" {
			return NewHTTPError(http.StatusBadRequest, "rejection_reason is required")
		}
		decision.RejectionReason = in.RejectionReason

	case model.ListingStatusSold:
		//PENDINGからの直接買取も許可する
		if in.PurchasedPrice == nil || *in.PurchasedPrice <= 0 {
			return NewHTTPError(http.StatusBadRequest, "purchased_price is required")
		}
		decision.PurchasedPrice = in.PurchasedPrice

	case model.ListingStatusExpired:
		// APPROVED/PENDINGからの期限切れ
	}

	if err := u.listings.ApplyDecision(ctx, id, decision); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ
	before, _ := json.Marshal(map[string]string{"status": string(l.Status)})
	after, _ := json.Marshal(map[string]string{"status": string(newStatus)})
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionDecideListing,
		ResourceType: model.AuditResourceListing,
		ResourceID:   id,
		BeforeJSON:   string(before),
		AfterJSON:    string(after),
		CreatedAt:    u.clock.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
