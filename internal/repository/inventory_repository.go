package repository

import (
	"context"

	"genstore/internal/domain/model"
)

// 発電機・部品の在庫をitem_typeで振り分けて操作する
type InventoryRepository interface {
	//在庫が足りるときだけ減らす（足りないなら false）
	DecreaseStockIfEnough(ctx context.Context, itemType model.ItemType, productID int64, qty int64) (bool, error)

	//キャンセル時の在庫戻し
	IncreaseStock(ctx context.Context, itemType model.ItemType, productID int64, qty int64) error

	//管理者の在庫直接変更＋調整履歴
	SetStockWithAdjustment(ctx context.Context, adminUserID int64, itemType model.ItemType, productID int64, newStock int64, reason string) error
}
