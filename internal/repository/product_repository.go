package repository

import (
	"context"

	"ordermgr/internal/domain/model"
)

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	Create(ctx context.Context, p model.Product) (model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	// quantity >= minQty の商品だけ返す（なければ ErrNotFound）
	FindByIDWithMinQuantity(ctx context.Context, id int64, minQty int64) (model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}
