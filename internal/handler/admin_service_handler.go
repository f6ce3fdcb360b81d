package handler

import (
	"net/http"

	"genstore/internal/config"
	"genstore/internal/middleware"
	"genstore/internal/repository"
	"genstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// サービス依頼の運用（STAFF以上）
type AdminServiceHandler struct {
	uc *usecase.AdminServiceUsecase
}

func NewAdminServiceHandler(uc *usecase.AdminServiceUsecase) *AdminServiceHandler {
	return &AdminServiceHandler{uc: uc}
}

func (h *AdminServiceHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/api/admin/services")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.StaffRoleGuard())

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
}

type adminServiceListResponse struct {
	Items []usecase.ServiceRequestOutput `json:"items"`
	Total int64                          `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

func (h *AdminServiceHandler) list(c echo.Context) error {
	page, limit, err := queryPageLimit(c)
	if err != nil {
		return writeError(c, err)
	}

	userID, err := queryInt64Ptr(c, "user_id")
	if err != nil {
		return writeError(c, err)
	}

	f := repository.ServiceListFilter{
		Page:        page,
		Limit:       limit,
		Status:      c.QueryParam("status"),
		Priority:    c.QueryParam("priority"),
		ServiceType: c.QueryParam("service_type"),
		UserID:      userID,
	}

	if v := c.QueryParam("from"); v != "" {
		t, ok := usecase.ParseDateTimeRFC3339(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		f.From = t
	}
	if v := c.QueryParam("to"); v != "" {
		t, ok := usecase.ParseDateTimeRFC3339(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		f.To = t
	}

	items, total, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, adminServiceListResponse{Items: items, Total: total, Page: page, Limit: limit})
}

func (h *AdminServiceHandler) detail(c echo.Context) error {
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

func (h *AdminServiceHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req usecase.AdminUpdateServiceInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Update(c.Request().Context(), userID, id, req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}
