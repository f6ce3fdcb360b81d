package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type AdminCatalogUsecase struct {
	tx         repo.TransactionManager
	inventory  repo.InventoryRepository
	categories repo.CategoryRepository
	brands     repo.BrandRepository
	auditRepo  repo.AuditLogRepository
	clock      Clock
}

func NewAdminCatalogUsecase(
	tx repo.TransactionManager,
	inventory repo.InventoryRepository,
	categories repo.CategoryRepository,
	brands repo.BrandRepository,
	auditRepo repo.AuditLogRepository,
	clock Clock,
) *AdminCatalogUsecase {
	return &AdminCatalogUsecase{
		tx:         tx,
		inventory:  inventory,
		categories: categories,
		brands:     brands,
		auditRepo:  auditRepo,
		clock:      clock,
	}
}

type ImageInput struct {
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
	IsPrimary bool   `json:"is_primary"`
}

type GeneratorInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	Wattage     int64  `json:"wattage"`
	FuelType    string `json:"fuel_type"`
	CategoryID  *int64 `json:"category_id"`
	BrandID     *int64 `json:"brand_id"`
	IsActive    bool   `json:"is_active"`

	Images []ImageInput `json:"images"`
}

type PartInput struct {
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	PartNumber       string `json:"part_number"`
	Description      string `json:"description"`
	Price            int64  `json:"price"`
	Stock            int64  `json:"stock"`
	CompatibleModels string `json:"compatible_models"`
	CategoryID       *int64 `json:"category_id"`
	BrandID          *int64 `json:"brand_id"`
	IsActive         bool   `json:"is_active"`

	Images []ImageInput `json:"images"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// 名前からslugを自動生成する（slug未指定時）
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// メイン画像は1枚だけ。未指定なら先頭をメインにする
func normalizeImages(in []ImageInput) ([]model.ProductImage, error) {
	imgs := make([]model.ProductImage, 0, len(in))
	primaries := 0
	for _, im := range in {
		if strings.TrimSpace(im.URL) == "" {
			return nil, NewHTTPError(http.StatusBadRequest, "image url is required")
		}
		if im.IsPrimary {
			primaries++
		}
		imgs = append(imgs, model.ProductImage{
			URL:       im.URL,
			SortOrder: im.SortOrder,
			IsPrimary: im.IsPrimary,
		})
	}
	if primaries > 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "only one image can be primary")
	}
	if primaries == 0 && len(imgs) > 0 {
		imgs[0].IsPrimary = true
	}
	return imgs, nil
}

func (in GeneratorInput) check() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	return nil
}

func (in PartInput) check() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	return nil
}

// 管理者一覧は非公開商品も含む
func (u *AdminCatalogUsecase) ListGenerators(ctx context.Context, in CatalogListInput) (GeneratorListOutput, error) {
	if err := in.check(); err != nil {
		return GeneratorListOutput{}, err
	}
	q := in.toQuery()
	q.IncludeInactive = true

	var (
		items []model.Generator
		total int64
	)
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		items, total, err = r.Generators().List(ctx, q)
		return err
	})
	if err != nil {
		return GeneratorListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return GeneratorListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *AdminCatalogUsecase) GetGenerator(ctx context.Context, id int64) (model.Generator, error) {
	if id <= 0 {
		return model.Generator{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var g model.Generator
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		g, err = r.Generators().FindByID(ctx, id)
		if err != nil {
			return err
		}
		g.Images, err = r.Images().ListByOwner(ctx, model.ItemTypeGenerator, id)
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Generator{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Generator{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return g, nil
}

func (u *AdminCatalogUsecase) ListParts(ctx context.Context, in CatalogListInput) (PartListOutput, error) {
	if err := in.check(); err != nil {
		return PartListOutput{}, err
	}
	q := in.toQuery()
	q.IncludeInactive = true

	var (
		items []model.Part
		total int64
	)
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		items, total, err = r.Parts().List(ctx, q)
		return err
	})
	if err != nil {
		return PartListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return PartListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *AdminCatalogUsecase) GetPart(ctx context.Context, id int64) (model.Part, error) {
	if id <= 0 {
		return model.Part{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p model.Part
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		p, err = r.Parts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		p.Images, err = r.Images().ListByOwner(ctx, model.ItemTypePart, id)
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Part{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Part{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *AdminCatalogUsecase) CreateGenerator(ctx context.Context, actorAdminUserID int64, in GeneratorInput) (model.Generator, error) {
	if actorAdminUserID <= 0 {
		return model.Generator{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.check(); err != nil {
		return model.Generator{}, err
	}
	imgs, err := normalizeImages(in.Images)
	if err != nil {
		return model.Generator{}, err
	}

	slug := in.Slug
	if slug == "" {
		slug = slugify(in.Name)
	}

	var created model.Generator

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		g := model.Generator{
			Name:        in.Name,
			Slug:        slug,
			Description: in.Description,
			Price:       in.Price,
			Stock:       in.Stock,
			Wattage:     in.Wattage,
			FuelType:    in.FuelType,
			CategoryID:  in.CategoryID,
			BrandID:     in.BrandID,
			IsActive:    in.IsActive,
		}

		g, err := r.Generators().Create(ctx, g)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Images().ReplaceByOwner(ctx, model.ItemTypeGenerator, g.ID, imgs); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		g.Images = imgs
		created = g
		return nil
	})
	if err != nil {
		return model.Generator{}, err
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionCreateProduct, model.AuditResourceGenerator, created.ID, "", catalogAuditJSON(created.Name, created.Price, created.IsActive))
	return created, nil
}

func (u *AdminCatalogUsecase) UpdateGenerator(ctx context.Context, actorAdminUserID int64, id int64, in GeneratorInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.check(); err != nil {
		return err
	}
	imgs, err := normalizeImages(in.Images)
	if err != nil {
		return err
	}

	var beforeJSON string

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		old, err := r.Generators().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		beforeJSON = catalogAuditJSON(old.Name, old.Price, old.IsActive)

		slug := in.Slug
		if slug == "" {
			slug = old.Slug
		}

		g := model.Generator{
			ID:          id,
			Name:        in.Name,
			Slug:        slug,
			Description: in.Description,
			Price:       in.Price,
			Wattage:     in.Wattage,
			FuelType:    in.FuelType,
			CategoryID:  in.CategoryID,
			BrandID:     in.BrandID,
			IsActive:    in.IsActive,
		}
		if err := r.Generators().Update(ctx, g); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.Images != nil {
			if err := r.Images().ReplaceByOwner(ctx, model.ItemTypeGenerator, id, imgs); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionUpdateProduct, model.AuditResourceGenerator, id, beforeJSON, catalogAuditJSON(in.Name, in.Price, in.IsActive))
	return nil
}

func (u *AdminCatalogUsecase) DeleteGenerator(ctx context.Context, actorAdminUserID int64, id int64) error {
	return u.deleteItem(ctx, actorAdminUserID, model.ItemTypeGenerator, id)
}

func (u *AdminCatalogUsecase) CreatePart(ctx context.Context, actorAdminUserID int64, in PartInput) (model.Part, error) {
	if actorAdminUserID <= 0 {
		return model.Part{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.check(); err != nil {
		return model.Part{}, err
	}
	imgs, err := normalizeImages(in.Images)
	if err != nil {
		return model.Part{}, err
	}

	slug := in.Slug
	if slug == "" {
		slug = slugify(in.Name)
	}

	var created model.Part

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p := model.Part{
			Name:             in.Name,
			Slug:             slug,
			PartNumber:       in.PartNumber,
			Description:      in.Description,
			Price:            in.Price,
			Stock:            in.Stock,
			CompatibleModels: in.CompatibleModels,
			CategoryID:       in.CategoryID,
			BrandID:          in.BrandID,
			IsActive:         in.IsActive,
		}

		p, err := r.Parts().Create(ctx, p)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Images().ReplaceByOwner(ctx, model.ItemTypePart, p.ID, imgs); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		p.Images = imgs
		created = p
		return nil
	})
	if err != nil {
		return model.Part{}, err
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionCreateProduct, model.AuditResourcePart, created.ID, "", catalogAuditJSON(created.Name, created.Price, created.IsActive))
	return created, nil
}

func (u *AdminCatalogUsecase) UpdatePart(ctx context.Context, actorAdminUserID int64, id int64, in PartInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.check(); err != nil {
		return err
	}
	imgs, err := normalizeImages(in.Images)
	if err != nil {
		return err
	}

	var beforeJSON string

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		old, err := r.Parts().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		beforeJSON = catalogAuditJSON(old.Name, old.Price, old.IsActive)

		slug := in.Slug
		if slug == "" {
			slug = old.Slug
		}

		p := model.Part{
			ID:               id,
			Name:             in.Name,
			Slug:             slug,
			PartNumber:       in.PartNumber,
			Description:      in.Description,
			Price:            in.Price,
			CompatibleModels: in.CompatibleModels,
			CategoryID:       in.CategoryID,
			BrandID:          in.BrandID,
			IsActive:         in.IsActive,
		}
		if err := r.Parts().Update(ctx, p); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.Images != nil {
			if err := r.Images().ReplaceByOwner(ctx, model.ItemTypePart, id, imgs); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.audit(ctx, actorAdminUserID, model.AuditActionUpdateProduct, model.AuditResourcePart, id, beforeJSON, catalogAuditJSON(in.Name, in.Price, in.IsActive))
	return nil
}

func (u *AdminCatalogUsecase) DeletePart(ctx context.Context, actorAdminUserID int64, id int64) error {
	return u.deleteItem(ctx, actorAdminUserID, model.ItemTypePart, id)
}

func (u *AdminCatalogUsecase) deleteItem(ctx context.Context, actorAdminUserID int64, itemType model.ItemType, id int64) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		if itemType == model.ItemTypeGenerator {
			err = r.Generators().SoftDelete(ctx, id)
		} else {
			err = r.Parts().SoftDelete(ctx, id)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return err
	}

	resource := model.AuditResourceGenerator
	if itemType == model.ItemTypePart {
		resource = model.AuditResourcePart
	}
	u.audit(ctx, actorAdminUserID, model.AuditActionDeleteProduct, resource, id, "", "")
	return nil
}

// SetStock は在庫の直接変更。調整履歴と監査ログを残す
func (u *AdminCatalogUsecase) SetStock(ctx context.Context, actorAdminUserID int64, itemType model.ItemType, id int64, newStock int64, reason string) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !itemType.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid item_type")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason is required")
	}

	err := u.inventory.SetStockWithAdjustment(ctx, actorAdminUserID, itemType, id, newStock, reason)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resource := model.AuditResourceGenerator
	if itemType == model.ItemTypePart {
		resource = model.AuditResourcePart
	}
	after, _ := json.Marshal(map[string]int64{"stock": newStock})
	u.audit(ctx, actorAdminUserID, model.AuditActionUpdateStock, resource, id, "", string(after))
	return nil
}

type TaxonomyInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (u *AdminCatalogUsecase) CreateCategory(ctx context.Context, in TaxonomyInput) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	slug := in.Slug
	if slug == "" {
		slug = slugify(in.Name)
	}
	c, err := u.categories.Create(ctx, model.Category{Name: in.Name, Slug: slug})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *AdminCatalogUsecase) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.categories.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AdminCatalogUsecase) CreateBrand(ctx context.Context, in TaxonomyInput) (model.Brand, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	slug := in.Slug
	if slug == "" {
		slug = slugify(in.Name)
	}
	b, err := u.brands.Create(ctx, model.Brand{Name: in.Name, Slug: slug})
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

func (u *AdminCatalogUsecase) DeleteBrand(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.brands.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func catalogAuditJSON(name string, price int64, isActive bool) string {
	b, _ := json.Marshal(map[string]interface{}{
		"name":      name,
		"price":     price,
		"is_active": isActive,
	})
	return string(b)
}

// 監査ログは本処理を失敗させない
func (u *AdminCatalogUsecase) audit(ctx context.Context, actorID int64, action model.AuditAction, resource model.AuditResourceType, resourceID int64, before string, after string) {
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		BeforeJSON:   before,
		AfterJSON:    after,
		CreatedAt:    u.clock.Now(),
	})
}
