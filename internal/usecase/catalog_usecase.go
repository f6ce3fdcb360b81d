package usecase

import (
	"context"
	"errors"
	"net/http"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

// GET /generators・/partsの入力
type CatalogListInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	BrandID    *int64
	MinPrice   *int64
	MaxPrice   *int64
	Sort       string
}

type GeneratorListOutput struct {
	Items []model.Generator `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type PartListOutput struct {
	Items []model.Part `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// 公開カタログ
type CatalogUsecase struct {
	generators repo.GeneratorRepository
	parts      repo.PartRepository
	categories repo.CategoryRepository
	brands     repo.BrandRepository
	images     repo.ProductImageRepository
}

func NewCatalogUsecase(
	generators repo.GeneratorRepository,
	parts repo.PartRepository,
	categories repo.CategoryRepository,
	brands repo.BrandRepository,
	images repo.ProductImageRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		generators: generators,
		parts:      parts,
		categories: categories,
		brands:     brands,
		images:     images,
	}
}

func (in CatalogListInput) check() error {
	if in.Page < 1 {
		return NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return NewHTTPError(http.StatusBadRequest, "invalid q")
	}
	return nil
}

func (in CatalogListInput) toQuery() repo.CatalogListQuery {
	return repo.CatalogListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          in.Q,
		CategoryID: in.CategoryID,
		BrandID:    in.BrandID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		Sort:       in.Sort,
	}
}

func (u *CatalogUsecase) ListGenerators(ctx context.Context, in CatalogListInput) (GeneratorListOutput, error) {
	if err := in.check(); err != nil {
		return GeneratorListOutput{}, err
	}

	items, total, err := u.generators.List(ctx, in.toQuery())
	if err != nil {
		return GeneratorListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return GeneratorListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *CatalogUsecase) GetGenerator(ctx context.Context, id int64) (model.Generator, error) {
	if id <= 0 {
		return model.Generator{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	g, err := u.generators.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Generator{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Generator{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//公開側では非公開商品は見せない
	if !g.IsActive {
		return model.Generator{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	imgs, err := u.images.ListByOwner(ctx, model.ItemTypeGenerator, g.ID)
	if err != nil {
		return model.Generator{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	g.Images = imgs
	return g, nil
}

func (u *CatalogUsecase) ListParts(ctx context.Context, in CatalogListInput) (PartListOutput, error) {
	if err := in.check(); err != nil {
		return PartListOutput{}, err
	}

	items, total, err := u.parts.List(ctx, in.toQuery())
	if err != nil {
		return PartListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return PartListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *CatalogUsecase) GetPart(ctx context.Context, id int64) (model.Part, error) {
	if id <= 0 {
		return model.Part{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.parts.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Part{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Part{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.Part{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	imgs, err := u.images.ListByOwner(ctx, model.ItemTypePart, p.ID)
	if err != nil {
		return model.Part{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	p.Images = imgs
	return p, nil
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	list, err := u.categories.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

func (u *CatalogUsecase) ListBrands(ctx context.Context) ([]model.Brand, error) {
	list, err := u.brands.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}
