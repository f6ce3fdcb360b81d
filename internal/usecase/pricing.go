package usecase

import "genstore/internal/domain/model"

// 配送料の設定値（settingsから解決する）
type ShippingSettings struct {
	FreeShippingThreshold int64
	DefaultCost           int64
}

// 適用済みクーポン（検証はCouponUsecase側）
type AppliedCoupon struct {
	Type  model.DiscountType
	Value int64
}

type PriceBreakdown struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	CODFee   int64 `json:"cod_fee"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// QuotePrice は注文金額の内訳を計算する。副作用なし。
// total = subtotal + shipping + codFee - discount（0未満にはしない）
func QuotePrice(subtotal int64, ship ShippingSettings, method model.PaymentMethod, codFee int64, coupon *AppliedCoupon) PriceBreakdown {
	b := PriceBreakdown{Subtotal: subtotal}

	//しきい値以上は送料無料
	if subtotal >= ship.FreeShippingThreshold {
		b.Shipping = 0
	} else {
		b.Shipping = ship.DefaultCost
	}

	//代引き手数料は代引きのときだけ
	if method == model.PaymentMethodCOD {
		b.CODFee = codFee
	}

	if coupon != nil {
		if coupon.Type == model.DiscountTypePercentage {
			b.Discount = subtotal * coupon.Value / 100
		} else {
			b.Discount = coupon.Value
		}
	}

	b.Total = subtotal + b.Shipping + b.CODFee - b.Discount
	if b.Total < 0 {
		b.Total = 0
	}
	return b
}
