package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	generators repo.GeneratorRepository
	parts      repo.PartRepository
	inventory  repo.InventoryRepository
	addresses  repo.AddressRepository
	services   repo.ServiceRequestRepository
	listings   repo.UserListingRepository
	images     repo.ProductImageRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository                   { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository           { return r.orderItems }
func (r *TxReposMock) Generators() repo.GeneratorRepository           { return r.generators }
func (r *TxReposMock) Parts() repo.PartRepository                     { return r.parts }
func (r *TxReposMock) Inventory() repo.InventoryRepository            { return r.inventory }
func (r *TxReposMock) Addresses() repo.AddressRepository              { return r.addresses }
func (r *TxReposMock) ServiceRequests() repo.ServiceRequestRepository { return r.services }
func (r *TxReposMock) Listings() repo.UserListingRepository           { return r.listings }
func (r *TxReposMock) Images() repo.ProductImageRepository            { return r.images }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateAdmin(ctx context.Context, orderID int64, patch repo.OrderAdminPatch) error {
	args := m.Called(ctx, orderID, patch)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, userID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type GeneratorRepoMock struct{ mock.Mock }

func (m *GeneratorRepoMock) List(ctx context.Context, q repo.CatalogListQuery) ([]model.Generator, int64, error) {
	args := m.Called(ctx, q)
	gs, _ := args.Get(0).([]model.Generator)
	return gs, args.Get(1).(int64), args.Error(2)
}

func (m *GeneratorRepoMock) FindByID(ctx context.Context, id int64) (model.Generator, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(model.Generator)
	return g, args.Error(1)
}

func (m *GeneratorRepoMock) FindBySlug(ctx context.Context, slug string) (model.Generator, error) {
	panic("not used")
}

func (m *GeneratorRepoMock) Create(ctx context.Context, g model.Generator) (model.Generator, error) {
	args := m.Called(ctx, g)
	out, _ := args.Get(0).(model.Generator)
	return out, args.Error(1)
}

func (m *GeneratorRepoMock) Update(ctx context.Context, g model.Generator) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *GeneratorRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PartRepoMock struct{ mock.Mock }

func (m *PartRepoMock) List(ctx context.Context, q repo.CatalogListQuery) ([]model.Part, int64, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]model.Part)
	return ps, args.Get(1).(int64), args.Error(2)
}

func (m *PartRepoMock) FindByID(ctx context.Context, id int64) (model.Part, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Part)
	return p, args.Error(1)
}

func (m *PartRepoMock) FindBySlug(ctx context.Context, slug string) (model.Part, error) {
	panic("not used")
}

func (m *PartRepoMock) Create(ctx context.Context, p model.Part) (model.Part, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Part)
	return out, args.Error(1)
}

func (m *PartRepoMock) Update(ctx context.Context, p model.Part) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PartRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, itemType model.ItemType, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, itemType, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, itemType model.ItemType, productID int64, qty int64) error {
	args := m.Called(ctx, itemType, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) SetStockWithAdjustment(ctx context.Context, adminUserID int64, itemType model.ItemType, productID int64, newStock int64, reason string) error {
	args := m.Called(ctx, adminUserID, itemType, productID, newStock, reason)
	return args.Error(0)
}

type CouponRepoMock struct{ mock.Mock }

func (m *CouponRepoMock) FindByCode(ctx context.Context, code string) (model.Coupon, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) FindByID(ctx context.Context, id int64) (model.Coupon, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) List(ctx context.Context, page int, limit int) ([]model.Coupon, int64, error) {
	args := m.Called(ctx, page, limit)
	cs, _ := args.Get(0).([]model.Coupon)
	return cs, args.Get(1).(int64), args.Error(2)
}

func (m *CouponRepoMock) Create(ctx context.Context, c model.Coupon) (model.Coupon, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Coupon)
	return out, args.Error(1)
}

func (m *CouponRepoMock) Update(ctx context.Context, c model.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CouponRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type SettingRepoMock struct{ mock.Mock }

func (m *SettingRepoMock) ListAll(ctx context.Context) ([]model.Setting, error) {
	args := m.Called(ctx)
	ss, _ := args.Get(0).([]model.Setting)
	return ss, args.Error(1)
}

func (m *SettingRepoMock) ListByGroup(ctx context.Context, group string) ([]model.Setting, error) {
	args := m.Called(ctx, group)
	ss, _ := args.Get(0).([]model.Setting)
	return ss, args.Error(1)
}

func (m *SettingRepoMock) FindByGroupKey(ctx context.Context, group string, key string) (model.Setting, error) {
	args := m.Called(ctx, group, key)
	s, _ := args.Get(0).(model.Setting)
	return s, args.Error(1)
}

func (m *SettingRepoMock) Upsert(ctx context.Context, s model.Setting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type ServiceRepoMock struct{ mock.Mock }

func (m *ServiceRepoMock) Create(ctx context.Context, sr model.ServiceRequest) (model.ServiceRequest, error) {
	args := m.Called(ctx, sr)
	out, _ := args.Get(0).(model.ServiceRequest)
	return out, args.Error(1)
}

func (m *ServiceRepoMock) FindByID(ctx context.Context, id int64) (model.ServiceRequest, error) {
	args := m.Called(ctx, id)
	sr, _ := args.Get(0).(model.ServiceRequest)
	return sr, args.Error(1)
}

func (m *ServiceRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.ServiceRequest, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	srs, _ := args.Get(0).([]model.ServiceRequest)
	return srs, args.Get(1).(int64), args.Error(2)
}

func (m *ServiceRepoMock) ListAdmin(ctx context.Context, f repo.ServiceListFilter) ([]model.ServiceRequest, int64, error) {
	args := m.Called(ctx, f)
	srs, _ := args.Get(0).([]model.ServiceRequest)
	return srs, args.Get(1).(int64), args.Error(2)
}

func (m *ServiceRepoMock) UpdateStatus(ctx context.Context, id int64, status model.ServiceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *ServiceRepoMock) UpdateAdmin(ctx context.Context, id int64, patch repo.ServicePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

type ListingRepoMock struct{ mock.Mock }

func (m *ListingRepoMock) Create(ctx context.Context, l model.UserListing) (model.UserListing, error) {
	args := m.Called(ctx, l)
	out, _ := args.Get(0).(model.UserListing)
	return out, args.Error(1)
}

func (m *ListingRepoMock) FindByID(ctx context.Context, id int64) (model.UserListing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(model.UserListing)
	return l, args.Error(1)
}

func (m *ListingRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.UserListing, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	ls, _ := args.Get(0).([]model.UserListing)
	return ls, args.Get(1).(int64), args.Error(2)
}

func (m *ListingRepoMock) ListAdmin(ctx context.Context, f repo.ListingListFilter) ([]model.UserListing, int64, error) {
	args := m.Called(ctx, f)
	ls, _ := args.Get(0).([]model.UserListing)
	return ls, args.Get(1).(int64), args.Error(2)
}

func (m *ListingRepoMock) ApplyDecision(ctx context.Context, id int64, d repo.ListingDecision) error {
	args := m.Called(ctx, id, d)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) List(ctx context.Context, f repo.UserListFilter) ([]model.User, int64, error) {
	args := m.Called(ctx, f)
	us, _ := args.Get(0).([]model.User)
	return us, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// =====================
// Clock / IDGenerator
// =====================

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type fixedIDGen struct{ id string }

func (g *fixedIDGen) NewID() string { return g.id }

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
