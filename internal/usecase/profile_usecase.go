package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	repo "genstore/internal/repository"
)

type ProfileUsecase struct {
	users repo.UserRepository
}

func NewProfileUsecase(users repo.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{users: users}
}

type ProfileOutput struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type UpdateProfileInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (u *ProfileUsecase) Get(ctx context.Context, userID int64) (ProfileOutput, error) {
	if userID <= 0 {
		return ProfileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	x, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return ProfileOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ProfileOutput{ID: x.ID, Email: x.Email, Name: x.Name, Phone: x.Phone, Role: string(x.Role)}, nil
}

// 名前と電話番号だけ本人が更新できる。メール・ロールはここでは触らない
func (u *ProfileUsecase) Update(ctx context.Context, userID int64, in UpdateProfileInput) (ProfileOutput, error) {
	if userID <= 0 {
		return ProfileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ProfileOutput{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if len(name) > 255 {
		return ProfileOutput{}, NewHTTPError(http.StatusBadRequest, "name is too long")
	}
	if len(in.Phone) > 30 {
		return ProfileOutput{}, NewHTTPError(http.StatusBadRequest, "phone is too long")
	}

	x, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return ProfileOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	x.Name = name
	x.Phone = strings.TrimSpace(in.Phone)
	if err := u.users.Update(ctx, x); err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ProfileOutput{ID: x.ID, Email: x.Email, Name: x.Name, Phone: x.Phone, Role: string(x.Role)}, nil
}
