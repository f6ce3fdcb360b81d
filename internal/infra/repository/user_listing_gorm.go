package repository

import (
	"context"
	"errors"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"

	"gorm.io/gorm"
)

type UserListingGormRepository struct {
	db *gorm.DB
}

func NewUserListingGormRepository(db *gorm.DB) *UserListingGormRepository {
	return &UserListingGormRepository{db: db}
}

func (r *UserListingGormRepository) Create(ctx context.Context, l model.UserListing) (model.UserListing, error) {
	if err := r.db.WithContext(ctx).Create(&l).Error; err != nil {
		return model.UserListing{}, err
	}
	return l, nil
}

func (r *UserListingGormRepository) FindByID(ctx context.Context, id int64) (model.UserListing, error) {
	var l model.UserListing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.UserListing{}, repo.ErrNotFound
	}
	if err != nil {
		return model.UserListing{}, err
	}
	return l, nil
}

func (r *UserListingGormRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.UserListing, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.UserListing{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return []model.UserListing{}, 0, err
	}

	var items []model.UserListing
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.UserListing{}, 0, err
	}
	return items, total, nil
}

func (r *UserListingGormRepository) ListAdmin(ctx context.Context, f repo.ListingListFilter) ([]model.UserListing, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.UserListing{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.UserListing{}, 0, err
	}

	var items []model.UserListing
	offset := (f.Page - 1) * f.Limit
	if err := q.Order("id desc").Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.UserListing{}, 0, err
	}
	return items, total, nil
}

func (r *UserListingGormRepository) ApplyDecision(ctx context.Context, id int64, d repo.ListingDecision) error {
	updates := map[string]interface{}{
		"status":           d.Status,
		"rejection_reason": d.RejectionReason,
	}
	if d.PurchasedPrice != nil {
		updates["purchased_price"] = *d.PurchasedPrice
	}

	res := r.db.WithContext(ctx).Model(&model.UserListing{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
