package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type AdminServiceUsecase struct {
	requests  repo.ServiceRequestRepository
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminServiceUsecase(requests repo.ServiceRequestRepository, auditRepo repo.AuditLogRepository, clock Clock) *AdminServiceUsecase {
	return &AdminServiceUsecase{requests: requests, auditRepo: auditRepo, clock: clock}
}

// スタッフ/管理者のチケット更新。nilの項目は変更しない
type AdminUpdateServiceInput struct {
	Status        *string `json:"status"`
	Priority      *string `json:"priority"`
	EstimatedCost *int64  `json:"estimated_cost"`
	FinalCost     *int64  `json:"final_cost"`
	ScheduledDate *string `json:"scheduled_date"` // RFC3339
	Diagnosis     *string `json:"diagnosis"`
	AdminNotes    *string `json:"admin_notes"`
	InternalNotes *string `json:"internal_notes"`
}

func (u *AdminServiceUsecase) List(ctx context.Context, f repo.ServiceListFilter) ([]ServiceRequestOutput, int64, error) {
	if f.Page < 1 {
		return []ServiceRequestOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []ServiceRequestOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	list, total, err := u.requests.ListAdmin(ctx, f)
	if err != nil {
		return []ServiceRequestOutput{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ServiceRequestOutput, 0, len(list))
	for _, sr := range list {
		outs = append(outs, toServiceOutput(sr))
	}
	return outs, total, nil
}

func (u *AdminServiceUsecase) Get(ctx context.Context, id int64) (ServiceRequestOutput, error) {
	if id <= 0 {
		return ServiceRequestOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	sr, err := u.requests.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ServiceRequestOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ServiceRequestOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toServiceOutput(sr), nil
}

// Update は見積もり〜完了までのワークフロー更新。
// COMPLETED/CANCELLEDのチケットは変更不可
func (u *AdminServiceUsecase) Update(ctx context.Context, actorUserID int64, id int64, in AdminUpdateServiceInput) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var newStatus *model.ServiceStatus
	if in.Status != nil {
		s := model.ServiceStatus(*in.Status)
		if !s.Valid() {
			return NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		newStatus = &s
	}

	var newPriority *model.ServicePriority
	if in.Priority != nil {
		p := model.ServicePriority(*in.Priority)
		if !p.Valid() {
			return NewHTTPError(http.StatusBadRequest, "invalid priority")
		}
		newPriority = &p
	}

	if in.EstimatedCost != nil && *in.EstimatedCost < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid estimated_cost")
	}
	if in.FinalCost != nil && *in.FinalCost < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid final_cost")
	}

	var scheduled *time.Time
	if in.ScheduledDate != nil {
		t, ok := ParseDateTimeRFC3339(*in.ScheduledDate)
		if !ok {
			return NewHTTPError(http.StatusBadRequest, "invalid scheduled_date")
		}
		scheduled = t
	}

	sr, err := u.requests.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if newStatus != nil && *newStatus != sr.Status && sr.Status.Frozen() {
		return NewHTTPError(http.StatusBadRequest, "cannot change completed or cancelled request")
	}

	patch := repo.ServicePatch{
		Status:        newStatus,
		Priority:      newPriority,
		EstimatedCost: in.EstimatedCost,
		FinalCost:     in.FinalCost,
		ScheduledDate: scheduled,
		Diagnosis:     in.Diagnosis,
		AdminNotes:    in.AdminNotes,
		InternalNotes: in.InternalNotes,
	}
	if err := u.requests.UpdateAdmin(ctx, id, patch); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ
	afterStatus := sr.Status
	if newStatus != nil {
		afterStatus = *newStatus
	}
	before, _ := json.Marshal(map[string]string{"status": string(sr.Status), "priority": string(sr.Priority)})
	afterPriority := sr.Priority
	if newPriority != nil {
		afterPriority = *newPriority
	}
	after, _ := json.Marshal(map[string]string{"status": string(afterStatus), "priority": string(afterPriority)})

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       model.AuditActionUpdateService,
		ResourceType: model.AuditResourceService,
		ResourceID:   id,
		BeforeJSON:   string(before),
		AfterJSON:    string(after),
		CreatedAt:    u.clock.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
