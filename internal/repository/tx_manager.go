package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Generators() GeneratorRepository
	Parts() PartRepository
	Inventory() InventoryRepository
	Addresses() AddressRepository
	ServiceRequests() ServiceRequestRepository
	Listings() UserListingRepository
	Images() ProductImageRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
