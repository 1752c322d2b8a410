package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Clients() ClientRepository
	Products() ProductRepository
	Inventory() InventoryRepository
	Orders() OrderRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがerrorを返す（またはpanicする）とrollback
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
