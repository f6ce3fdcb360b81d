package repository

import (
	"context"
	"errors"
	"fmt"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// item_typeからモデルを選ぶ
func stockModel(itemType model.ItemType) (interface{}, error) {
	switch itemType {
	case model.ItemTypeGenerator:
		return &model.Generator{}, nil
	case model.ItemTypePart:
		return &model.Part{}, nil
	default:
		return nil, fmt.Errorf("unknown item type: %s", itemType)
	}
}

func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, itemType model.ItemType, productID int64, qty int64) (bool, error) {
	m, err := stockModel(itemType)
	if err != nil {
		return false, err
	}

	//条件付きUPDATEで競合しても在庫がマイナスにならない
	res := r.db.WithContext(ctx).Model(m).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, itemType model.ItemType, productID int64, qty int64) error {
	m, err := stockModel(itemType)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(m).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) SetStockWithAdjustment(ctx context.Context, adminUserID int64, itemType model.ItemType, productID int64, newStock int64, reason string) error {
	m, err := stockModel(itemType)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//現在庫を読んでdeltaを履歴に残す
		var current struct{ Stock int64 }
		err := tx.Model(m).
			Select("stock").
			Where("id = ?", productID).
			Take(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repo.ErrNotFound
		}
		if err != nil {
			return err
		}

		res := tx.Model(m).Where("id = ?", productID).Update("stock", newStock)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		adj := model.InventoryAdjustment{
			ItemType:    itemType,
			ProductID:   productID,
			AdminUserID: adminUserID,
			Delta:       newStock - current.Stock,
			Reason:      reason,
		}
		return tx.Create(&adj).Error
	})
}
