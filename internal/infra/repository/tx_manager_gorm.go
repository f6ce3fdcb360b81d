package repository

import (
	"context"

	repo "genstore/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders          repo.OrderRepository
	orderItems      repo.OrderItemRepository
	generators      repo.GeneratorRepository
	parts           repo.PartRepository
	inventory       repo.InventoryRepository
	addresses       repo.AddressRepository
	serviceRequests repo.ServiceRequestRepository
	listings        repo.UserListingRepository
	images          repo.ProductImageRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                   { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository           { return r.orderItems }
func (r *txReposGorm) Generators() repo.GeneratorRepository           { return r.generators }
func (r *txReposGorm) Parts() repo.PartRepository                     { return r.parts }
func (r *txReposGorm) Inventory() repo.InventoryRepository            { return r.inventory }
func (r *txReposGorm) Addresses() repo.AddressRepository              { return r.addresses }
func (r *txReposGorm) ServiceRequests() repo.ServiceRequestRepository { return r.serviceRequests }
func (r *txReposGorm) Listings() repo.UserListingRepository           { return r.listings }
func (r *txReposGorm) Images() repo.ProductImageRepository            { return r.images }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:          NewOrderGormRepository(tx),
			orderItems:      NewOrderItemGormRepository(tx),
			generators:      NewGeneratorGormRepository(tx),
			parts:           NewPartGormRepository(tx),
			inventory:       NewInventoryGormRepository(tx),
			addresses:       NewAddressGormRepository(tx),
			serviceRequests: NewServiceRequestGormRepository(tx),
			listings:        NewUserListingGormRepository(tx),
			images:          NewProductImageGormRepository(tx),
		}
		return fn(r)
	})
}
