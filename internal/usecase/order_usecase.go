package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type CheckoutItemInput struct {
	ItemType  string `json:"item_type"`
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type PlaceOrderInput struct {
	ShippingName        string `json:"shipping_name"`
	ShippingPhone       string `json:"shipping_phone"`
	ShippingEmail       string `json:"shipping_email"`
	ShippingAddressLine string `json:"shipping_address_line"`
	ShippingCity        string `json:"shipping_city"`
	ShippingState       string `json:"shipping_state"`
	ShippingPostalCode  string `json:"shipping_postal_code"`
	ShippingCountry     string `json:"shipping_country"`

	PaymentMethod string              `json:"payment_method"`
	CustomerNotes string              `json:"customer_notes"`
	CouponCode    string              `json:"coupon_code"`
	Items         []CheckoutItemInput `json:"items"`

	//ヘッダーから渡す（bodyには入れない）
	IdempotencyKey string `json:"-"`
}

// 入力チェックはValidatorに切り出す（usecaseはinterfaceに依存）
type CheckoutValidator interface {
	ValidatePlaceOrder(in PlaceOrderInput) error
}

type OrderItemOutput struct {
	ItemType  string `json:"item_type"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"order_number"`
	UserID      int64  `json:"user_id"`

	ShippingName        string `json:"shipping_name"`
	ShippingPhone       string `json:"shipping_phone"`
	ShippingEmail       string `json:"shipping_email"`
	ShippingAddressLine string `json:"shipping_address_line"`
	ShippingCity        string `json:"shipping_city"`
	ShippingState       string `json:"shipping_state"`
	ShippingPostalCode  string `json:"shipping_postal_code"`
	ShippingCountry     string `json:"shipping_country"`

	PaymentMethod string `json:"payment_method"`
	CustomerNotes string `json:"customer_notes"`
	CouponCode    string `json:"coupon_code,omitempty"`

	Subtotal     int64 `json:"subtotal"`
	ShippingCost int64 `json:"shipping_cost"`
	CODFee       int64 `json:"cod_fee"`
	Discount     int64 `json:"discount"`
	Total        int64 `json:"total"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	TrackingNumber string `json:"tracking_number,omitempty"`
	Carrier        string `json:"carrier,omitempty"`

	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderItemOutput `json:"items"`
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	coupons   repo.CouponRepository
	resolver  *SettingsResolver
	validator CheckoutValidator
	idGen     IDGenerator
	clock     Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	coupons repo.CouponRepository,
	resolver *SettingsResolver,
	validator CheckoutValidator,
	idGen IDGenerator,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		coupons:   coupons,
		resolver:  resolver,
		validator: validator,
		idGen:     idGen,
		clock:     clock,
	}
}

// PlaceOrder はチェックアウト本体。
// 商品の名前と価格は注文時点のスナップショットとして保存する
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validator.ValidatePlaceOrder(in); err != nil {
		return OrderOutput{}, err
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	method := model.PaymentMethod(in.PaymentMethod)

	//支払い方法が設定で有効になっているか
	payment, err := u.resolver.Payment(ctx)
	if err != nil {
		return OrderOutput{}, err
	}
	switch method {
	case model.PaymentMethodCOD:
		if !payment.CODEnabled {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cash on delivery is not available")
		}
	case model.PaymentMethodBankTransfer:
		if !payment.BankTransferEnabled {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "bank transfer is not available")
		}
	}

	shipping, err := u.resolver.Shipping(ctx)
	if err != nil {
		return OrderOutput{}, err
	}

	//クーポンは事前に取得だけして、小計確定後に検証する
	var coupon *model.Coupon
	if code := strings.TrimSpace(in.CouponCode); code != "" {
		c, err := u.coupons.FindByCode(ctx, code)
		if errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "coupon not found")
		}
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		coupon = &c
	}

	var out OrderOutput

	//在庫減算から注文作成までは1トランザクション
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら既存の注文をそのまま返す
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		//商品を読み、在庫を減らし、スナップショットを作る
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var subtotal int64 = 0

		for _, it := range in.Items {
			itemType := model.ItemType(it.ItemType)

			name, price, err := u.loadItem(ctx, r, itemType, it.ProductID)
			if err != nil {
				return err
			}

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, itemType, it.ProductID, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "out of stock: "+name)
			}

			orderItems = append(orderItems, model.OrderItem{
				ItemType:            itemType,
				ProductID:           it.ProductID,
				ProductNameSnapshot: name,
				UnitPriceSnapshot:   price,
				Quantity:            it.Quantity,
			})
			subtotal += price * it.Quantity
		}

		now := u.clock.Now()

		//小計が確定したのでクーポンを検証する
		var applied *AppliedCoupon
		couponCode := ""
		if coupon != nil {
			if err := checkCouponUsable(*coupon, subtotal, now); err != nil {
				return err
			}
			applied = &AppliedCoupon{Type: coupon.DiscountType, Value: coupon.DiscountValue}
			couponCode = coupon.Code
		}

		breakdown := QuotePrice(subtotal, shipping, method, payment.CODFee, applied)

		order := model.Order{
			OrderNumber: u.newOrderNumber(now),
			UserID:      userID,

			ShippingName:        in.ShippingName,
			ShippingPhone:       in.ShippingPhone,
			ShippingEmail:       in.ShippingEmail,
			ShippingAddressLine: in.ShippingAddressLine,
			ShippingCity:        in.ShippingCity,
			ShippingState:       in.ShippingState,
			ShippingPostalCode:  in.ShippingPostalCode,
			ShippingCountry:     in.ShippingCountry,

			PaymentMethod: method,
			CustomerNotes: in.CustomerNotes,
			CouponCode:    couponCode,

			Subtotal:     breakdown.Subtotal,
			ShippingCost: breakdown.Shipping,
			CODFee:       breakdown.CODFee,
			Discount:     breakdown.Discount,
			Total:        breakdown.Total,

			Status:        model.OrderStatusPending,
			PaymentStatus: model.PaymentStatusPending,

			IdempotencyKey: key,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			//同時に同じキーが入った場合はもう一度探して同じ結果を返す
			if errors.Is(err, repo.ErrDuplicateKey) {
				ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, userID, key)
				if err2 == nil && found2 {
					items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
					if err3 != nil {
						return NewHTTPError(http.StatusInternalServerError, "db error")
					}
					out = toOrderOutput(ex2, items2)
					return nil
				}
				return NewHTTPError(http.StatusConflict, "idempotency conflict")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 発電機と部品をitem_typeで振り分けて読む
func (u *OrderUsecase) loadItem(ctx context.Context, r repo.TxRepos, itemType model.ItemType, productID int64) (string, int64, error) {
	switch itemType {
	case model.ItemTypeGenerator:
		g, err := r.Generators().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return "", 0, NewHTTPError(http.StatusBadRequest, "invalid item")
		}
		if err != nil {
			return "", 0, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !g.IsActive {
			return "", 0, NewHTTPError(http.StatusBadRequest, "invalid item")
		}
		return g.Name, g.Price, nil

	case model.ItemTypePart:
		p, err := r.Parts().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return "", 0, NewHTTPError(http.StatusBadRequest, "invalid item")
		}
		if err != nil {
			return "", 0, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.IsActive {
			return "", 0, NewHTTPError(http.StatusBadRequest, "invalid item")
		}
		return p.Name, p.Price, nil
	}

	return "", 0, NewHTTPError(http.StatusBadRequest, "invalid item type")
}

func (u *OrderUsecase) newOrderNumber(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(u.idGen.NewID(), "-", ""))
	if len(id) > 8 {
		id = id[:8]
	}
	return "ORD-" + now.Format("20060102") + "-" + id
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ItemType:  string(it.ItemType),
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,

		ShippingName:        o.ShippingName,
		ShippingPhone:       o.ShippingPhone,
		ShippingEmail:       o.ShippingEmail,
		ShippingAddressLine: o.ShippingAddressLine,
		ShippingCity:        o.ShippingCity,
		ShippingState:       o.ShippingState,
		ShippingPostalCode:  o.ShippingPostalCode,
		ShippingCountry:     o.ShippingCountry,

		PaymentMethod: string(o.PaymentMethod),
		CustomerNotes: o.CustomerNotes,
		CouponCode:    o.CouponCode,

		Subtotal:     o.Subtotal,
		ShippingCost: o.ShippingCost,
		CODFee:       o.CODFee,
		Discount:     o.Discount,
		Total:        o.Total,

		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),

		TrackingNumber: o.TrackingNumber,
		Carrier:        o.Carrier,

		CreatedAt: o.CreatedAt,
		Items:     outItems,
	}
}
