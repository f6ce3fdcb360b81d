package repository

import (
	"context"
	"errors"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"

	"gorm.io/gorm"
)

type PartGormRepository struct {
	db *gorm.DB
}

func NewPartGormRepository(db *gorm.DB) *PartGormRepository {
	return &PartGormRepository{db: db}
}

func (r *PartGormRepository) List(ctx context.Context, f repo.CatalogListQuery) ([]model.Part, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	q := r.db.WithContext(ctx).Model(&model.Part{})

	//部品は品番でも検索できる
	if f.Q != "" {
		like := "%" + f.Q + "%"
		q = q.Where("name ILIKE ? OR part_number ILIKE ?", like, like)
		f.Q = ""
	}
	q = applyCatalogQuery(q, f)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return []model.Part{}, 0, err
	}

	var items []model.Part
	offset := (f.Page - 1) * f.Limit
	if err := q.Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Part{}, 0, err
	}
	return items, total, nil
}

func (r *PartGormRepository) FindByID(ctx context.Context, id int64) (model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Part{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Part{}, err
	}
	return p, nil
}

func (r *PartGormRepository) FindBySlug(ctx context.Context, slug string) (model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Part{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Part{}, err
	}
	return p, nil
}

func (r *PartGormRepository) Create(ctx context.Context, p model.Part) (model.Part, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Part{}, err
	}
	return p, nil
}

func (r *PartGormRepository) Update(ctx context.Context, p model.Part) error {
	res := r.db.WithContext(ctx).Model(&model.Part{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":              p.Name,
			"slug":              p.Slug,
			"part_number":       p.PartNumber,
			"description":       p.Description,
			"price":             p.Price,
			"compatible_models": p.CompatibleModels,
			"category_id":       p.CategoryID,
			"brand_id":          p.BrandID,
			"is_active":         p.IsActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PartGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Part{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
