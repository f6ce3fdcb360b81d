package repository

import (
	"context"
	"errors"

	"genstore/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

type UserListFilter struct {
	Page   int
	Limit  int
	Q      string
	Role   string
	Status string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// プロフィール・ロール・ステータスの更新
	Update(ctx context.Context, user *model.User) error
	// 管理者用の一覧
	List(ctx context.Context, f UserListFilter) ([]model.User, int64, error)
	//強制ログアウト用にトークンのバージョンを＋１
	IncrementTokenVersion(ctx context.Context, userID int64) error
}
