package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type CreateListingInput struct {
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Condition    string `json:"condition"`
	RunningHours int64  `json:"running_hours"`
	AskingPrice  int64  `json:"asking_price"`
	Description  string `json:"description"`
	ImageURLs    string `json:"image_urls"`
	ContactPhone string `json:"contact_phone"`
}

type ListingOutput struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Condition    string `json:"condition"`
	RunningHours int64  `json:"running_hours"`
	AskingPrice  int64  `json:"asking_price"`
	Description  string `json:"description"`
	ImageURLs    string `json:"image_urls"`
	ContactPhone string `json:"contact_phone"`

	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	PurchasedPrice  *int64 `json:"purchased_price,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListingUsecase struct {
	listings repo.UserListingRepository
	clock    Clock
}

func NewListingUsecase(listings repo.UserListingRepository, clock Clock) *ListingUsecase {
	return &ListingUsecase{listings: listings, clock: clock}
}

// Create は「発電機を売りたい」の出品。必ずPENDINGで始まる
func (u *ListingUsecase) Create(ctx context.Context, userID int64, in CreateListingInput) (ListingOutput, error) {
	if userID <= 0 {
		return ListingOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if strings.TrimSpace(in.Brand) == "" {
		return ListingOutput{}, NewHTTPError(http.StatusBadRequest, "brand is required")
	}
	if strings.TrimSpace(in.Model) == "" {
		return ListingOutput{}, NewHTTPError(http.StatusBadRequest, "model is required")
	}
	if in.AskingPrice <= 0 {
		return ListingOutput{}, NewHTTPError(http.StatusBadRequest, "invalid asking_price")
	}
	if in.RunningHours < 0 {
		return ListingOutput{}, NewHTTPError(http.StatusBadRequest, "invalid running_hours")
	}

	now := u.clock.Now()

	l := model.UserListing{
		UserID:       userID,
		Brand:        in.Brand,
		Model:        in.Model,
		Year:         in.Year,
		Condition:    in.Condition,
		RunningHours: in.RunningHours,
		AskingPrice:  in.AskingPrice,
		Description:  in.Description,
		ImageURLs:    in.ImageURLs,
		ContactPhone: in.ContactPhone,
		Status:       model.ListingStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := u.listings.Create(ctx, l)
	if err != nil {
		return ListingOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toListingOutput(created), nil
}

func (u *ListingUsecase) ListMine(ctx context.Context, userID int64, page int, limit int) ([]ListingOutput, error) {
	if userID <= 0 {
		return []ListingOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	list, _, err := u.listings.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return []ListingOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ListingOutput, 0, len(list))
	for _, l := range list {
		outs = append(outs, toListingOutput(l))
	}
	return outs, nil
}

func toListingOutput(l model.UserListing) ListingOutput {
	return ListingOutput{
		ID:     l.ID,
		UserID: l.UserID,

		Brand:        l.Brand,
		Model:        l.Model,
		Year:         l.Year,
		Condition:    l.Condition,
		RunningHours: l.RunningHours,
		AskingPrice:  l.AskingPrice,
		Description:  l.Description,
		ImageURLs:    l.ImageURLs,
		ContactPhone: l.ContactPhone,

		Status:          string(l.Status),
		RejectionReason: l.RejectionReason,
		PurchasedPrice:  l.PurchasedPrice,

		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
