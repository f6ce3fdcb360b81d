package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type AdminUserUsecase struct {
	users     repo.UserRepository
	hasher    PasswordHasher
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminUserUsecase(
	users repo.UserRepository,
	hasher PasswordHasher,
	auditRepo repo.AuditLogRepository,
	clock Clock,
) *AdminUserUsecase {
	return &AdminUserUsecase{users: users, hasher: hasher, auditRepo: auditRepo, clock: clock}
}

type UserOutput struct {
	ID           int64            `json:"id"`
	Email        string           `json:"email"`
	Name         string           `json:"name"`
	Phone        string           `json:"phone"`
	Role         model.Role       `json:"role"`
	Status       model.UserStatus `json:"status"`
	TokenVersion int              `json:"token_version"`
	CreatedAt    string           `json:"created_at"`
}

type UserListInput struct {
	Page   int
	Limit  int
	Q      string
	Role   string
	Status string
}

type UserListOutput struct {
	Items []UserOutput `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type CreateStaffInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AdminUpdateUserInput struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

func toUserOutput(u model.User) UserOutput {
	return UserOutput{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		Role:         u.Role,
		Status:       u.Status,
		TokenVersion: u.TokenVersion,
		CreatedAt:    u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (u *AdminUserUsecase) List(ctx context.Context, in UserListInput) (UserListOutput, error) {
	if in.Page < 1 {
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	users, total, err := u.users.List(ctx, repo.UserListFilter{
		Page:   in.Page,
		Limit:  in.Limit,
		Q:      in.Q,
		Role:   in.Role,
		Status: in.Status,
	})
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]UserOutput, 0, len(users))
	for _, x := range users {
		items = append(items, toUserOutput(x))
	}
	return UserListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *AdminUserUsecase) Get(ctx context.Context, id int64) (UserOutput, error) {
	if id <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	x, err := u.users.FindByID(ctx, id)
	if errors.Is(err, repo.ErrUserNotFound) {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(*x), nil
}

// CreateStaff はスタッフ/管理者アカウントの発行。セルフ登録は無い
func (u *AdminUserUsecase) CreateStaff(ctx context.Context, actorAdminUserID int64, in CreateStaffInput) (UserOutput, error) {
	if actorAdminUserID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	role := model.Role(strings.ToUpper(in.Role))
	if !role.IsStaffOrAdmin() {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "role must be STAFF or ADMIN")
	}

	if existing, err := u.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return UserOutput{}, NewHTTPError(http.StatusConflict, "email already in use")
	} else if err != nil && !errors.Is(err, repo.ErrUserNotFound) {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to hash password")
	}

	newUser := model.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         role,
		Status:       model.UserStatusActive,
	}
	if err := u.users.Create(ctx, &newUser); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionCreateUser, newUser.ID, "", userAuditJSON(newUser))
	return toUserOutput(newUser), nil
}

// ロール・ステータスの変更。自分自身は変更できない
func (u *AdminUserUsecase) Update(ctx context.Context, actorAdminUserID int64, targetID int64, in AdminUpdateUserInput) (UserOutput, error) {
	if actorAdminUserID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if targetID == actorAdminUserID {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "cannot change own account")
	}
	if in.Role == nil && in.Status == nil {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	target, err := u.users.FindByID(ctx, targetID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	before := userAuditJSON(*target)

	wasAccessible := target.Status.CanAccess()

	if in.Role != nil {
		role := model.Role(strings.ToUpper(*in.Role))
		if role != model.RoleUser && !role.IsStaffOrAdmin() {
			return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid role")
		}
		target.Role = role
	}
	if in.Status != nil {
		status := model.UserStatus(strings.ToUpper(*in.Status))
		switch status {
		case model.UserStatusActive, model.UserStatusInactive, model.UserStatusSuspended,
			model.UserStatusBlocked, model.UserStatusBanned, model.UserStatusPendingVerification:
		default:
			return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		target.Status = status
	}

	if err := u.users.Update(ctx, target); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//アクセス不可に落としたら既存トークンも無効化
	if wasAccessible && !target.Status.CanAccess() {
		if err := u.users.IncrementTokenVersion(ctx, target.ID); err != nil {
			return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		target.TokenVersion++
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionUpdateUser, target.ID, before, userAuditJSON(*target))
	return toUserOutput(*target), nil
}

func userAuditJSON(u model.User) string {
	b, _ := json.Marshal(map[string]interface{}{
		"email":  u.Email,
		"role":   u.Role,
		"status": u.Status,
	})
	return string(b)
}

func (u *AdminUserUsecase) audit(ctx context.Context, actorID int64, action model.AuditAction, targetID int64, before string, after string) {
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetID,
		BeforeJSON:   before,
		AfterJSON:    after,
		CreatedAt:    u.clock.Now(),
	})
}
