package repository

import (
	"context"
	"errors"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingGormRepository struct {
	db *gorm.DB
}

func NewSettingGormRepository(db *gorm.DB) *SettingGormRepository {
	return &SettingGormRepository{db: db}
}

func (r *SettingGormRepository) ListAll(ctx context.Context) ([]model.Setting, error) {
	var list []model.Setting
	err := r.db.WithContext(ctx).
		Order("setting_group asc, key asc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SettingGormRepository) ListByGroup(ctx context.Context, group string) ([]model.Setting, error) {
	var list []model.Setting
	err := r.db.WithContext(ctx).
		Where("setting_group = ?", group).
		Order("key asc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SettingGormRepository) FindByGroupKey(ctx context.Context, group string, key string) (model.Setting, error) {
	var s model.Setting
	err := r.db.WithContext(ctx).
		Where("setting_group = ? AND key = ?", group, key).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Setting{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Setting{}, err
	}
	return s, nil
}

func (r *SettingGormRepository) Upsert(ctx context.Context, s model.Setting) error {
	//(group, key)で衝突したら値だけ上書き
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_group"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "value_type", "updated_at"}),
	}).Create(&s).Error
}
