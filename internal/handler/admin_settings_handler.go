package handler

import (
	"net/http"

	"genstore/internal/config"
	"genstore/internal/middleware"
	"genstore/internal/repository"
	"genstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// サイト設定（ADMINのみ）
type AdminSettingsHandler struct {
	uc *usecase.AdminSettingsUsecase
}

func NewAdminSettingsHandler(uc *usecase.AdminSettingsUsecase) *AdminSettingsHandler {
	return &AdminSettingsHandler{uc: uc}
}

func (h *AdminSettingsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/api/admin/settings")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.getAll)
	g.POST("", h.updateAll)
	g.GET("/:group", h.getGroup)
	g.PUT("/:group", h.updateGroup)
}

func (h *AdminSettingsHandler) getAll(c echo.Context) error {
	out, err := h.uc.GetAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminSettingsHandler) getGroup(c echo.Context) error {
	out, err := h.uc.GetGroup(c.Request().Context(), c.Param("group"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// {group: {key: value}} 形式でまとめて書き込む
func (h *AdminSettingsHandler) updateAll(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var groups map[string]map[string]string
	if err := c.Bind(&groups); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateAll(c.Request().Context(), userID, groups); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminSettingsHandler) updateGroup(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var values map[string]string
	if err := c.Bind(&values); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateGroup(c.Request().Context(), userID, c.Param("group"), values); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}
