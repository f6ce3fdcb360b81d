package usecase

import (
	"context"
	"net/http"
	"time"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

// 監査ログの閲覧（管理者のみ）
type AuditUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditUsecase(logs repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{logs: logs}
}

type AuditListInput struct {
	Page         int
	Limit        int
	ActorUserID  *int64
	Action       string
	ResourceType string
	ResourceID   *int64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

type AuditListOutput struct {
	Items []model.AuditLog `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (u *AuditUsecase) List(ctx context.Context, in AuditListInput) (AuditListOutput, error) {
	if in.Page < 1 {
		return AuditListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return AuditListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	f := repo.AuditLogFilter{
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
		CreatedFrom: in.CreatedFrom,
		CreatedTo:   in.CreatedTo,
		Limit:       in.Limit,
		Offset:      (in.Page - 1) * in.Limit,
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		f.Action = &a
	}
	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		f.ResourceType = &rt
	}

	items, err := u.logs.List(ctx, f)
	if err != nil {
		return AuditListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return AuditListOutput{Items: items, Page: in.Page, Limit: in.Limit}, nil
}
