package repository

import (
	"context"

	"genstore/internal/domain/model"
)

type AddressRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	FindByID(ctx context.Context, addressID int64) (model.Address, error)
	Create(ctx context.Context, a model.Address) (model.Address, error)
	Update(ctx context.Context, a model.Address) error
	Delete(ctx context.Context, addressID int64) error
	IsOwnedByUser(ctx context.Context, addressID int64, userID int64) (bool, error)

	//デフォルト住所は1人1件。先に全部falseへ
	ClearDefault(ctx context.Context, userID int64) error
	SetDefault(ctx context.Context, addressID int64) error
}
