package validator

import (
	"net/http"
	"net/mail"
	"strings"

	"genstore/internal/domain/model"
	"genstore/internal/usecase"
)

type checkoutValidator struct{}

// Usecaseにはinterfaceで渡す
func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

func (v *checkoutValidator) ValidatePlaceOrder(in usecase.PlaceOrderInput) error {
	//配送先の必須チェック
	if strings.TrimSpace(in.ShippingName) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "shipping_name is required")
	}
	if strings.TrimSpace(in.ShippingPhone) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "shipping_phone is required")
	}
	if strings.TrimSpace(in.ShippingAddressLine) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "shipping_address_line is required")
	}
	if strings.TrimSpace(in.ShippingCity) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "shipping_city is required")
	}
	if strings.TrimSpace(in.ShippingCountry) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "shipping_country is required")
	}

	//emailは任意。入っているなら形式チェック
	if e := strings.TrimSpace(in.ShippingEmail); e != "" {
		if _, err := mail.ParseAddress(e); err != nil {
			return usecase.NewHTTPError(http.StatusBadRequest, "invalid shipping_email")
		}
	}

	if !model.PaymentMethod(in.PaymentMethod).Valid() {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	if len(in.Items) == 0 {
		return usecase.NewHTTPError(http.StatusBadRequest, "items is empty")
	}
	if len(in.Items) > 100 {
		return usecase.NewHTTPError(http.StatusBadRequest, "too many items")
	}

	for _, it := range in.Items {
		if !model.ItemType(it.ItemType).Valid() {
			return usecase.NewHTTPError(http.StatusBadRequest, "invalid item_type")
		}
		if it.ProductID <= 0 {
			return usecase.NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if it.Quantity <= 0 || it.Quantity > 1000 {
			return usecase.NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}

	return nil
}
