package usecase_test

import (
	"context"
	"testing"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
	"genstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func strptr(s string) *string { return &s }

type adminOrderTestEnv struct {
	tx     *TxManagerMock
	orders *OrderRepoMock
	items  *OrderItemRepoMock
	inv    *InventoryRepoMock
	audit  *AuditRepoMock
	uc     *usecase.AdminOrderUsecase
}

func newAdminOrderTestEnv() *adminOrderTestEnv {
	env := &adminOrderTestEnv{
		tx:     new(TxManagerMock),
		orders: new(OrderRepoMock),
		items:  new(OrderItemRepoMock),
		inv:    new(InventoryRepoMock),
		audit:  new(AuditRepoMock),
	}
	env.tx.Repos = &TxReposMock{
		orders:     env.orders,
		orderItems: env.items,
		inventory:  env.inv,
	}
	env.uc = usecase.NewAdminOrderUsecase(env.tx, env.audit, &fixedClock{t: testNow})
	return env
}

func TestAdminUpdateOrder_StatusChange_WritesAudit(t *testing.T) {
	env := newAdminOrderTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusPending}, nil)
	env.orders.On("UpdateAdmin", mock.Anything, int64(10), mock.Anything).Return(nil)
	env.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrder && l.ResourceID == 10 && l.ActorUserID == 99
	})).Return(nil)

	err := env.uc.Update(context.Background(), 99, 10, usecase.AdminUpdateOrderInput{
		Status: strptr(string(model.OrderStatusConfirmed)),
	})
	assert.NoError(t, err)
	env.audit.AssertExpectations(t)
}

func TestAdminUpdateOrder_FrozenOrderIsImmutable(t *testing.T) {
	env := newAdminOrderTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, Status: model.OrderStatusCancelled}, nil)

	err := env.uc.Update(context.Background(), 99, 10, usecase.AdminUpdateOrderInput{
		Status: strptr(string(model.OrderStatusConfirmed)),
	})
	assertErrContains(t, err, "cannot change cancelled or refunded order")

	env.orders.AssertNotCalled(t, "UpdateAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateOrder_DeliveredOnlyRefundable(t *testing.T) {
	env := newAdminOrderTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, Status: model.OrderStatusDelivered}, nil)

	err := env.uc.Update(context.Background(), 99, 10, usecase.AdminUpdateOrderInput{
		Status: strptr(string(model.OrderStatusShipped)),
	})
	assertErrContains(t, err, "delivered order can only be refunded")
}

func TestAdminUpdateOrder_DeliveredToRefunded_OK(t *testing.T) {
	env := newAdminOrderTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, Status: model.OrderStatusDelivered, PaymentStatus: model.PaymentStatusPaid}, nil)
	env.orders.On("UpdateAdmin", mock.Anything, int64(10), mock.Anything).Return(nil)
	env.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := env.uc.Update(context.Background(), 99, 10, usecase.AdminUpdateOrderInput{
		Status: strptr(string(model.OrderStatusRefunded)),
	})
	assert.NoError(t, err)

	//配達済みのキャンセルではないので在庫は戻らない
	env.inv.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateOrder_CancelBeforeShipment_RestoresStock(t *testing.T) {
	env := newAdminOrderTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, Status: model.OrderStatusProcessing}, nil)
	env.items.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{
		{ItemType: model.ItemTypeGenerator, ProductID: 7, Quantity: 2},
		{ItemType: model.ItemTypePart, ProductID: 3, Quantity: 1},
	}, nil)
	env.inv.On("IncreaseStock", mock.Anything, model.ItemTypeGenerator, int64(7), int64(2)).Return(nil)
	env.inv.On("IncreaseStock", mock.Anything, model.ItemTypePart, int64(3), int64(1)).Return(nil)
	env.orders.On("UpdateAdmin", mock.Anything, int64(10), mock.Anything).Return(nil)
	env.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := env.uc.Update(context.Background(), 99, 10, usecase.AdminUpdateOrderInput{
		Status: strptr(string(model.OrderStatusCancelled)),
	})
	assert.NoError(t, err)
	env.inv.AssertExpectations(t)
}

func TestAdminUpdateOrder_CancelAfterShipment_NoRestock(t *testing.T) {
	env := newAdminOrderTestEnv()

	env.tx.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, Status: model.OrderStatusShipped}, nil)
	env.orders.On("UpdateAdmin", mock.Anything, int64(10), mock.Anything).Return(nil)
	env.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := env.uc.Update(context.Background(), 99, 10, usecase.AdminUpdateOrderInput{
		Status: strptr(string(model.OrderStatusCancelled)),
	})
	assert.NoError(t, err)
	env.inv.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateOrder_InvalidStatus(t *testing.T) {
	env := newAdminOrderTestEnv()

	err := env.uc.Update(context.Background(), 99, 10, usecase.AdminUpdateOrderInput{
		Status: strptr("NOT_A_STATUS"),
	})
	assertErrContains(t, err, "invalid status")
}

func TestAdminOrderList_InvalidPage(t *testing.T) {
	env := newAdminOrderTestEnv()

	_, _, err := env.uc.List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 20})
	assertErrContains(t, err, "invalid page")
}

func TestAdminOrderList_InvalidLimit(t *testing.T) {
	env := newAdminOrderTestEnv()

	_, _, err := env.uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 1000})
	assertErrContains(t, err, "invalid limit")
}
