package repository

import (
	"context"
	"errors"

	"genstore/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索（公開側・管理側で共用）
type CatalogListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	BrandID    *int64
	MinPrice   *int64
	MaxPrice   *int64
	Sort       string

	//trueなら非公開商品も含める（管理者用）
	IncludeInactive bool
}

type GeneratorRepository interface {
	List(ctx context.Context, q CatalogListQuery) ([]model.Generator, int64, error)
	FindByID(ctx context.Context, id int64) (model.Generator, error)
	FindBySlug(ctx context.Context, slug string) (model.Generator, error)
	Create(ctx context.Context, g model.Generator) (model.Generator, error)
	Update(ctx context.Context, g model.Generator) error
	SoftDelete(ctx context.Context, id int64) error
}

type PartRepository interface {
	List(ctx context.Context, q CatalogListQuery) ([]model.Part, int64, error)
	FindByID(ctx context.Context, id int64) (model.Part, error)
	FindBySlug(ctx context.Context, slug string) (model.Part, error)
	Create(ctx context.Context, p model.Part) (model.Part, error)
	Update(ctx context.Context, p model.Part) error
	SoftDelete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type BrandRepository interface {
	List(ctx context.Context) ([]model.Brand, error)
	Create(ctx context.Context, b model.Brand) (model.Brand, error)
	Delete(ctx context.Context, id int64) error
}

type ProductImageRepository interface {
	ListByOwner(ctx context.Context, ownerType model.ItemType, ownerID int64) ([]model.ProductImage, error)
	//既存画像を全部消して入れ替える
	ReplaceByOwner(ctx context.Context, ownerType model.ItemType, ownerID int64, images []model.ProductImage) error
}
