package repository

import (
	"context"
	"errors"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"

	"gorm.io/gorm"
)

type ServiceRequestGormRepository struct {
	db *gorm.DB
}

func NewServiceRequestGormRepository(db *gorm.DB) *ServiceRequestGormRepository {
	return &ServiceRequestGormRepository{db: db}
}

func (r *ServiceRequestGormRepository) Create(ctx context.Context, sr model.ServiceRequest) (model.ServiceRequest, error) {
	if err := r.db.WithContext(ctx).Create(&sr).Error; err != nil {
		return model.ServiceRequest{}, err
	}
	return sr, nil
}

func (r *ServiceRequestGormRepository) FindByID(ctx context.Context, id int64) (model.ServiceRequest, error) {
	var sr model.ServiceRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ServiceRequest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ServiceRequest{}, err
	}
	return sr, nil
}

func (r *ServiceRequestGormRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.ServiceRequest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return []model.ServiceRequest{}, 0, err
	}

	var items []model.ServiceRequest
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.ServiceRequest{}, 0, err
	}
	return items, total, nil
}

func (r *ServiceRequestGormRepository) ListAdmin(ctx context.Context, f repo.ServiceListFilter) ([]model.ServiceRequest, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.ServiceRequest{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.ServiceType != "" {
		q = q.Where("service_type = ?", f.ServiceType)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.ServiceRequest{}, 0, err
	}

	var items []model.ServiceRequest
	offset := (f.Page - 1) * f.Limit
	if err := q.Order("id desc").Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.ServiceRequest{}, 0, err
	}
	return items, total, nil
}

func (r *ServiceRequestGormRepository) UpdateStatus(ctx context.Context, id int64, status model.ServiceStatus) error {
	res := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ServiceRequestGormRepository) UpdateAdmin(ctx context.Context, id int64, patch repo.ServicePatch) error {
	updates := map[string]interface{}{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.EstimatedCost != nil {
		updates["estimated_cost"] = *patch.EstimatedCost
	}
	if patch.FinalCost != nil {
		updates["final_cost"] = *patch.FinalCost
	}
	if patch.ScheduledDate != nil {
		updates["scheduled_date"] = *patch.ScheduledDate
	}
	if patch.Diagnosis != nil {
		updates["diagnosis"] = *patch.Diagnosis
	}
	if patch.AdminNotes != nil {
		updates["admin_notes"] = *patch.AdminNotes
	}
	if patch.InternalNotes != nil {
		updates["internal_notes"] = *patch.InternalNotes
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
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
