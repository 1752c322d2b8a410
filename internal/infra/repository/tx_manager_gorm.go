package repository

import (
	"context"

	repo "ordermgr/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	clients   repo.ClientRepository
	products  repo.ProductRepository
	inventory repo.InventoryRepository
	orders    repo.OrderRepository
}

func (r *txReposGorm) Clients() repo.ClientRepository      { return r.clients }
func (r *txReposGorm) Products() repo.ProductRepository    { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository { return r.inventory }
func (r *txReposGorm) Orders() repo.OrderRepository        { return r.orders }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// gormのTransactionはfnのerror/panicでrollbackする
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			clients:   NewClientGormRepository(tx),
			products:  NewProductGormRepository(tx),
			inventory: NewInventoryGormRepository(tx),
			orders:    NewOrderGormRepository(tx),
		}
		return fn(r)
	})
}
