package repository

import (
	"context"

	"genstore/internal/domain/model"
)

type ListingListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
}

// 管理者の出品判断の反映内容
type ListingDecision struct {
	Status          model.ListingStatus
	RejectionReason string
	PurchasedPrice  *int64
}

type UserListingRepository interface {
	Create(ctx context.Context, l model.UserListing) (model.UserListing, error)
	FindByID(ctx context.Context, id int64) (model.UserListing, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.UserListing, int64, error)
	ListAdmin(ctx context.Context, f ListingListFilter) ([]model.UserListing, int64, error)
	ApplyDecision(ctx context.Context, id int64, d ListingDecision) error
}
