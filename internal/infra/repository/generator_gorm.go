package repository

import (
	"context"
	"errors"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"

	"gorm.io/gorm"
)

type GeneratorGormRepository struct {
	db *gorm.DB
}

func NewGeneratorGormRepository(db *gorm.DB) *GeneratorGormRepository {
	return &GeneratorGormRepository{db: db}
}

func applyCatalogQuery(q *gorm.DB, f repo.CatalogListQuery) *gorm.DB {
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if f.Q != "" {
		q = q.Where("name ILIKE ?", "%"+f.Q+"%")
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.BrandID != nil {
		q = q.Where("brand_id = ?", *f.BrandID)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	switch f.Sort {
	case "price_asc":
		q = q.Order("price asc")
	case "price_desc":
		q = q.Order("price desc")
	default:
		q = q.Order("id desc")
	}
	return q
}

func (r *GeneratorGormRepository) List(ctx context.Context, f repo.CatalogListQuery) ([]model.Generator, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	q := applyCatalogQuery(r.db.WithContext(ctx).Model(&model.Generator{}), f)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return []model.Generator{}, 0, err
	}

	var items []model.Generator
	offset := (f.Page - 1) * f.Limit
	if err := q.Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Generator{}, 0, err
	}
	return items, total, nil
}

func (r *GeneratorGormRepository) FindByID(ctx context.Context, id int64) (model.Generator, error) {
	var g model.Generator
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Generator{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Generator{}, err
	}
	return g, nil
}

func (r *GeneratorGormRepository) FindBySlug(ctx context.Context, slug string) (model.Generator, error) {
	var g model.Generator
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Generator{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Generator{}, err
	}
	return g, nil
}

func (r *GeneratorGormRepository) Create(ctx context.Context, g model.Generator) (model.Generator, error) {
	if err := r.db.WithContext(ctx).Create(&g).Error; err != nil {
		return model.Generator{}, err
	}
	return g, nil
}

func (r *GeneratorGormRepository) Update(ctx context.Context, g model.Generator) error {
	res := r.db.WithContext(ctx).Model(&model.Generator{}).
		Where("id = ?", g.ID).
		Updates(map[string]interface{}{
			"name":        g.Name,
			"slug":        g.Slug,
			"description": g.Description,
			"price":       g.Price,
			"wattage":     g.Wattage,
			"fuel_type":   g.FuelType,
			"category_id": g.CategoryID,
			"brand_id":    g.BrandID,
			"is_active":   g.IsActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *GeneratorGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Generator{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
