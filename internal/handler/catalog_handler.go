package handler

import (
	"net/http"

	"genstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 公開カタログAPI（認証不要）
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/generators", h.listGenerators)
	e.GET("/api/generators/:id", h.generatorDetail)
	e.GET("/api/parts", h.listParts)
	e.GET("/api/parts/:id", h.partDetail)
	e.GET("/api/categories", h.listCategories)
	e.GET("/api/brands", h.listBrands)
}

// クエリから一覧条件を組み立てる
func catalogListInput(c echo.Context) (usecase.CatalogListInput, error) {
	page, limit, err := queryPageLimit(c)
	if err != nil {
		return usecase.CatalogListInput{}, err
	}

	categoryID, err := queryInt64Ptr(c, "category_id")
	if err != nil {
		return usecase.CatalogListInput{}, err
	}
	brandID, err := queryInt64Ptr(c, "brand_id")
	if err != nil {
		return usecase.CatalogListInput{}, err
	}
	minPrice, err := queryInt64Ptr(c, "min_price")
	if err != nil {
		return usecase.CatalogListInput{}, err
	}
	maxPrice, err := queryInt64Ptr(c, "max_price")
	if err != nil {
		return usecase.CatalogListInput{}, err
	}

	return usecase.CatalogListInput{
		Page:       page,
		Limit:      limit,
		Q:          c.QueryParam("q"),
		CategoryID: categoryID,
		BrandID:    brandID,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Sort:       c.QueryParam("sort"),
	}, nil
}

func (h *CatalogHandler) listGenerators(c echo.Context) error {
	in, err := catalogListInput(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListGenerators(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) generatorDetail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetGenerator(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listParts(c echo.Context) error {
	in, err := catalogListInput(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListParts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) partDetail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetPart(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listBrands(c echo.Context) error {
	out, err := h.uc.ListBrands(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
