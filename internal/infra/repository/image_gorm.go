package repository

import (
	"context"

	"genstore/internal/domain/model"

	"gorm.io/gorm"
)

type ProductImageGormRepository struct {
	db *gorm.DB
}

func NewProductImageGormRepository(db *gorm.DB) *ProductImageGormRepository {
	return &ProductImageGormRepository{db: db}
}

func (r *ProductImageGormRepository) ListByOwner(ctx context.Context, ownerType model.ItemType, ownerID int64) ([]model.ProductImage, error) {
	var list []model.ProductImage
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("sort_order asc, id asc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductImageGormRepository) ReplaceByOwner(ctx context.Context, ownerType model.ItemType, ownerID int64, images []model.ProductImage) error {
	//削除→一括作成。呼び出し側でトランザクションに入れる
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Delete(&model.ProductImage{}).Error
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].ID = 0
		images[i].OwnerType = ownerType
		images[i].OwnerID = ownerID
	}
	return r.db.WithContext(ctx).Create(&images).Error
}
