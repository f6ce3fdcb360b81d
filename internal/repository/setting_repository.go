package repository

import (
	"context"

	"genstore/internal/domain/model"
)

type SettingRepository interface {
	ListAll(ctx context.Context) ([]model.Setting, error)
	ListByGroup(ctx context.Context, group string) ([]model.Setting, error)
	FindByGroupKey(ctx context.Context, group string, key string) (model.Setting, error)
	//あれば更新、なければ作成
	Upsert(ctx context.Context, s model.Setting) error
}
