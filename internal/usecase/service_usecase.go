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

type CreateServiceRequestInput struct {
	ServiceType string `json:"service_type"`

	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	Address      string `json:"address"`

	ProblemDescription string `json:"problem_description"`

	GeneratorBrand  string `json:"generator_brand"`
	GeneratorModel  string `json:"generator_model"`
	GeneratorSerial string `json:"generator_serial"`

	ImageURLs string `json:"image_urls"`
}

type ServiceRequestOutput struct {
	ID           int64  `json:"id"`
	TicketNumber string `json:"ticket_number"`
	UserID       int64  `json:"user_id"`
	ServiceType  string `json:"service_type"`

	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	Address      string `json:"address"`

	ProblemDescription string `json:"problem_description"`

	GeneratorBrand  string `json:"generator_brand"`
	GeneratorModel  string `json:"generator_model"`
	GeneratorSerial string `json:"generator_serial"`

	ImageURLs string `json:"image_urls"`

	Status   string `json:"status"`
	Priority string `json:"priority"`

	EstimatedCost *int64     `json:"estimated_cost"`
	FinalCost     *int64     `json:"final_cost"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Diagnosis     string     `json:"diagnosis"`
	AdminNotes    string     `json:"admin_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceUsecase struct {
	requests repo.ServiceRequestRepository
	idGen    IDGenerator
	clock    Clock
}

func NewServiceUsecase(requests repo.ServiceRequestRepository, idGen IDGenerator, clock Clock) *ServiceUsecase {
	return &ServiceUsecase{requests: requests, idGen: idGen, clock: clock}
}

// Create はチケット起票。ユーザー起票は必ずPENDINGで始まる
func (u *ServiceUsecase) Create(ctx context.Context, userID int64, in CreateServiceRequestInput) (ServiceRequestOutput, error) {
	if userID <= 0 {
		return ServiceRequestOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if !model.ServiceType(in.ServiceType).Valid() {
		return ServiceRequestOutput{}, NewHTTPError(http.StatusBadRequest, "invalid service_type")
	}
	if strings.TrimSpace(in.ContactName) == "" {
		return ServiceRequestOutput{}, NewHTTPError(http.StatusBadRequest, "contact_name is required")
	}
	if strings.TrimSpace(in.ContactPhone) == "" {
		return ServiceRequestOutput{}, NewHTTPError(http.StatusBadRequest, "contact_phone is required")
	}
	if strings.TrimSpace(in.ProblemDescription) == "" {
		return ServiceRequestOutput{}, NewHTTPError(http.StatusBadRequest, "problem_description is required")
	}

	now := u.clock.Now()

	sr := model.ServiceRequest{
		TicketNumber: u.newTicketNumber(now),
		UserID:       userID,
		ServiceType:  model.ServiceType(in.ServiceType),

		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		ContactEmail: in.ContactEmail,
		Address:      in.Address,

		ProblemDescription: in.ProblemDescription,

		GeneratorBrand:  in.GeneratorBrand,
		GeneratorModel:  in.GeneratorModel,
		GeneratorSerial: in.GeneratorSerial,

		ImageURLs: in.ImageURLs,

		Status:   model.ServiceStatusPending,
		Priority: model.ServicePriorityMedium,

		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := u.requests.Create(ctx, sr)
	if err != nil {
		return ServiceRequestOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toServiceOutput(created), nil
}

func (u *ServiceUsecase) newTicketNumber(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(u.idGen.NewID(), "-", ""))
	if len(id) > 8 {
		id = id[:8]
	}
	return "SRV-" + now.Format("20060102") + "-" + id
}

func (u *ServiceUsecase) ListMine(ctx context.Context, userID int64, page int, limit int) ([]ServiceRequestOutput, error) {
	if userID <= 0 {
		return []ServiceRequestOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	list, _, err := u.requests.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return []ServiceRequestOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ServiceRequestOutput, 0, len(list))
	for _, sr := range list {
		outs = append(outs, toServiceOutput(sr))
	}
	return outs, nil
}

func (u *ServiceUsecase) GetMine(ctx context.Context, userID int64, id int64) (ServiceRequestOutput, error) {
	if userID <= 0 {
		return ServiceRequestOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
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
	if sr.UserID != userID {
		//他人のチケットは「存在しない扱い」
		return ServiceRequestOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return toServiceOutput(sr), nil
}

// Cancel は本人によるキャンセル。PENDINGの間だけ
func (u *ServiceUsecase) Cancel(ctx context.Context, userID int64, id int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	sr, err := u.requests.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if sr.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if sr.Status != model.ServiceStatusPending {
		return NewHTTPError(http.StatusBadRequest, "only pending requests can be cancelled")
	}

	if err := u.requests.UpdateStatus(ctx, id, model.ServiceStatusCancelled); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func toServiceOutput(sr model.ServiceRequest) ServiceRequestOutput {
	return ServiceRequestOutput{
		ID:           sr.ID,
		TicketNumber: sr.TicketNumber,
		UserID:       sr.UserID,
		ServiceType:  string(sr.ServiceType),

		ContactName:  sr.ContactName,
		ContactPhone: sr.ContactPhone,
		ContactEmail: sr.ContactEmail,
		Address:      sr.Address,

		ProblemDescription: sr.ProblemDescription,

		GeneratorBrand:  sr.GeneratorBrand,
		GeneratorModel:  sr.GeneratorModel,
		GeneratorSerial: sr.GeneratorSerial,

		ImageURLs: sr.ImageURLs,

		Status:   string(sr.Status),
		Priority: string(sr.Priority),

		EstimatedCost: sr.EstimatedCost,
		FinalCost:     sr.FinalCost,
		ScheduledDate: sr.ScheduledDate,
		Diagnosis:     sr.Diagnosis,
		AdminNotes:    sr.AdminNotes,

		CreatedAt: sr.CreatedAt,
		UpdatedAt: sr.UpdatedAt,
	}
}
