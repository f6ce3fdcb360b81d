package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository, clock Clock) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, auditRepo: auditRepo, clock: clock}
}

// 管理者の注文更新。nilの項目は変更しない
type AdminUpdateOrderInput struct {
	Status         *string `json:"status"`
	PaymentStatus  *string `json:"payment_status"`
	TrackingNumber *string `json:"tracking_number"`
	Carrier        *string `json:"carrier"`
	AdminNotes     *string `json:"admin_notes"`
	InternalNotes  *string `json:"internal_notes"`
}

func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) ([]OrderOutput, int64, error) {
	if f.Page < 1 {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var outs []OrderOutput
	var total int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, n, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		total = n

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
		return []OrderOutput{}, 0, err
	}
	return outs, total, nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, orderID int64) (OrderOutput, error) {
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

// Update はステータス・支払い・追跡情報・メモの更新。
// CANCELLED/REFUNDEDの注文は変更不可、DELIVEREDからはREFUNDEDのみ。
// 出荷前のキャンセルは在庫を戻す
func (u *AdminOrderUsecase) Update(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdateOrderInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var newStatus *model.OrderStatus
	if in.Status != nil {
		s := model.OrderStatus(*in.Status)
		if !s.Valid() {
			return NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		newStatus = &s
	}

	var newPayment *model.PaymentStatus
	if in.PaymentStatus != nil {
		p := model.PaymentStatus(*in.PaymentStatus)
		if !p.Valid() {
			return NewHTTPError(http.StatusBadRequest, "invalid payment_status")
		}
		newPayment = &p
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		statusChanged := newStatus != nil && *newStatus != o.Status
		if statusChanged {
			//終端ガード
			if o.Status.Frozen() {
				return NewHTTPError(http.StatusBadRequest, "cannot change cancelled or refunded order")
			}
			if o.Status == model.OrderStatusDelivered && *newStatus != model.OrderStatusRefunded {
				return NewHTTPError(http.StatusBadRequest, "delivered order can only be refunded")
			}

			//出荷前キャンセルは在庫戻し
			if *newStatus == model.OrderStatusCancelled && o.Status.BeforeShipment() {
				items, err := r.OrderItems().ListByOrderID(ctx, orderID)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				for _, it := range items {
					if err := r.Inventory().IncreaseStock(ctx, it.ItemType, it.ProductID, it.Quantity); err != nil {
						return NewHTTPError(http.StatusInternalServerError, "db error")
					}
				}
			}
		}

		patch := repo.OrderAdminPatch{
			Status:         newStatus,
			PaymentStatus:  newPayment,
			TrackingNumber: in.TrackingNumber,
			Carrier:        in.Carrier,
			AdminNotes:     in.AdminNotes,
			InternalNotes:  in.InternalNotes,
		}
		if err := r.Orders().UpdateAdmin(ctx, orderID, patch); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ
		before := orderAuditSnapshot(o.Status, o.PaymentStatus)
		after := orderAuditSnapshot(pickOrderStatus(newStatus, o.Status), pickPaymentStatus(newPayment, o.PaymentStatus))
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   before,
			AfterJSON:    after,
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

func orderAuditSnapshot(status model.OrderStatus, payment model.PaymentStatus) string {
	b, _ := json.Marshal(map[string]string{
		"status":         string(status),
		"payment_status": string(payment),
	})
	return string(b)
}

func pickOrderStatus(next *model.OrderStatus, current model.OrderStatus) model.OrderStatus {
	if next != nil {
		return *next
	}
	return current
}

func pickPaymentStatus(next *model.PaymentStatus, current model.PaymentStatus) model.PaymentStatus {
	if next != nil {
		return *next
	}
	return current
}

// handlerの期間パラメータ用
func ParseDateTimeRFC3339(s string) (*time.Time, bool) {
	if s == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
