package handler

import (
	"net/http"

	"genstore/internal/config"
	"genstore/internal/middleware"
	"genstore/internal/repository"
	"genstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 買取出品の審査（STAFF以上）
type AdminListingHandler struct {
	uc *usecase.AdminListingUsecase
}

func NewAdminListingHandler(uc *usecase.AdminListingUsecase) *AdminListingHandler {
	return &AdminListingHandler{uc: uc}
}

func (h *AdminListingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/api/admin/user-generators")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.StaffRoleGuard())

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.decide)
}

type adminListingListResponse struct {
	Items []usecase.ListingOutput `json:"items"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

func (h *AdminListingHandler) list(c echo.Context) error {
	page, limit, err := queryPageLimit(c)
	if err != nil {
		return writeError(c, err)
	}

	userID, err := queryInt64Ptr(c, "user_id")
	if err != nil {
		return writeError(c, err)
	}

	f := repository.ListingListFilter{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
		UserID: userID,
	}

	items, total, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, adminListingListResponse{Items: items, Total: total, Page: page, Limit: limit})
}

func (h *AdminListingHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminListingHandler) decide(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req usecase.ListingDecisionInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Decide(c.Request().Context(), userID, id, req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}
