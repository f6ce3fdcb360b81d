package handler

import (
	"net/http"
	"strconv"

	"genstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// クーポンの事前検証API（チェックアウト画面用）
type CouponHandler struct {
	uc *usecase.CouponUsecase
}

func NewCouponHandler(uc *usecase.CouponUsecase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

func (h *CouponHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/coupons/validate", h.validate)
}

func (h *CouponHandler) validate(c echo.Context) error {
	code := c.QueryParam("code")

	subtotal, err := strconv.ParseInt(c.QueryParam("subtotal"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid subtotal"})
	}

	out, err := h.uc.Validate(c.Request().Context(), code, subtotal)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
