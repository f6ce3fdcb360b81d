package repository

import (
	"context"
	"time"

	"genstore/internal/domain/model"
)

type ServiceListFilter struct {
	Page        int
	Limit       int
	Status      string
	Priority    string
	ServiceType string
	UserID      *int64
	From        *time.Time
	To          *time.Time
}

// 管理者/スタッフのチケット更新（nilの項目は変更しない）
type ServicePatch struct {
	Status        *model.ServiceStatus
	Priority      *model.ServicePriority
	EstimatedCost *int64
	FinalCost     *int64
	ScheduledDate *time.Time
	Diagnosis     *string
	AdminNotes    *string
	InternalNotes *string
}

type ServiceRequestRepository interface {
	Create(ctx context.Context, sr model.ServiceRequest) (model.ServiceRequest, error)
	FindByID(ctx context.Context, id int64) (model.ServiceRequest, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.ServiceRequest, int64, error)
	ListAdmin(ctx context.Context, f ServiceListFilter) ([]model.ServiceRequest, int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.ServiceStatus) error
	UpdateAdmin(ctx context.Context, id int64, patch ServicePatch) error
}
