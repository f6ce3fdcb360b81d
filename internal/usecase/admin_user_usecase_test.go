package usecase_test

import (
	"context"
	"testing"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
	"genstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type HasherMock struct{ mock.Mock }

func (m *HasherMock) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func newAdminUserUsecaseForTest(users *UserRepoMock, hasher *HasherMock, audit *AuditRepoMock) *usecase.AdminUserUsecase {
	return usecase.NewAdminUserUsecase(users, hasher, audit, &fixedClock{t: testNow})
}

func TestCreateStaff_Success(t *testing.T) {
	users := new(UserRepoMock)
	hasher := new(HasherMock)
	audit := new(AuditRepoMock)
	uc := newAdminUserUsecaseForTest(users, hasher, audit)

	users.On("FindByEmail", mock.Anything, "staff@example.com").Return(nil, repo.ErrUserNotFound)
	hasher.On("Hash", "password123").Return("hashed", nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "staff@example.com" &&
			u.PasswordHash == "hashed" &&
			u.Role == model.RoleStaff &&
			u.Status == model.UserStatusActive
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.CreateStaff(context.Background(), 99, usecase.CreateStaffInput{
		Email:    "staff@example.com",
		Name:     "Staff",
		Password: "password123",
		Role:     "staff",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleStaff, out.Role)
	users.AssertExpectations(t)
}

func TestCreateStaff_RejectsUserRole(t *testing.T) {
	uc := newAdminUserUsecaseForTest(new(UserRepoMock), new(HasherMock), new(AuditRepoMock))

	_, err := uc.CreateStaff(context.Background(), 99, usecase.CreateStaffInput{
		Email:    "someone@example.com",
		Password: "password123",
		Role:     "USER",
	})
	assertErrContains(t, err, "role must be STAFF or ADMIN")
}

func TestCreateStaff_ShortPassword(t *testing.T) {
	uc := newAdminUserUsecaseForTest(new(UserRepoMock), new(HasherMock), new(AuditRepoMock))

	_, err := uc.CreateStaff(context.Background(), 99, usecase.CreateStaffInput{
		Email:    "someone@example.com",
		Password: "short",
		Role:     "STAFF",
	})
	assertErrContains(t, err, "password must be at least 8 characters")
}

func TestCreateStaff_DuplicateEmail(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAdminUserUsecaseForTest(users, new(HasherMock), new(AuditRepoMock))

	users.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&model.User{ID: 5, Email: "taken@example.com"}, nil)

	_, err := uc.CreateStaff(context.Background(), 99, usecase.CreateStaffInput{
		Email:    "taken@example.com",
		Password: "password123",
		Role:     "STAFF",
	})
	assertErrContains(t, err, "email already in use")
}

func TestAdminUpdateUser_CannotChangeOwnAccount(t *testing.T) {
	uc := newAdminUserUsecaseForTest(new(UserRepoMock), new(HasherMock), new(AuditRepoMock))

	_, err := uc.Update(context.Background(), 99, 99, usecase.AdminUpdateUserInput{
		Role: strptr("STAFF"),
	})
	assertErrContains(t, err, "cannot change own account")
}

func TestAdminUpdateUser_NothingToUpdate(t *testing.T) {
	uc := newAdminUserUsecaseForTest(new(UserRepoMock), new(HasherMock), new(AuditRepoMock))

	_, err := uc.Update(context.Background(), 99, 1, usecase.AdminUpdateUserInput{})
	assertErrContains(t, err, "nothing to update")
}

// アクセス不能に落とした時だけトークンを無効化する
func TestAdminUpdateUser_SuspendBumpsTokenVersion(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)
	uc := newAdminUserUsecaseForTest(users, new(HasherMock), audit)

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{
		ID: 1, Email: "user@example.com", Role: model.RoleUser,
		Status: model.UserStatusActive, TokenVersion: 2,
	}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	users.On("IncrementTokenVersion", mock.Anything, int64(1)).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Update(context.Background(), 99, 1, usecase.AdminUpdateUserInput{
		Status: strptr("SUSPENDED"),
	})
	assert.NoError(t, err)
	assert.Equal(t, model.UserStatusSuspended, out.Status)
	assert.Equal(t, 3, out.TokenVersion)
	users.AssertExpectations(t)
}

func TestAdminUpdateUser_RoleChangeKeepsTokenVersion(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)
	uc := newAdminUserUsecaseForTest(users, new(HasherMock), audit)

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{
		ID: 1, Email: "user@example.com", Role: model.RoleUser,
		Status: model.UserStatusActive, TokenVersion: 2,
	}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Update(context.Background(), 99, 1, usecase.AdminUpdateUserInput{
		Role: strptr("STAFF"),
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleStaff, out.Role)

	users.AssertNotCalled(t, "IncrementTokenVersion", mock.Anything, mock.Anything)
}

func TestAdminUpdateUser_InvalidStatus(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAdminUserUsecaseForTest(users, new(HasherMock), new(AuditRepoMock))

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{
		ID: 1, Status: model.UserStatusActive,
	}, nil)

	_, err := uc.Update(context.Background(), 99, 1, usecase.AdminUpdateUserInput{
		Status: strptr("FROZEN"),
	})
	assertErrContains(t, err, "invalid status")
}
