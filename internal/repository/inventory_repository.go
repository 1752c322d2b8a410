package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算。足りなければ ErrConstraintViolation
	Decrease(ctx context.Context, productID int64, qty int64) error
}
