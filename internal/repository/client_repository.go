package repository

import (
	"context"

	"ordermgr/internal/domain/model"
)

type ClientRepository interface {
	Create(ctx context.Context, c model.Client) (model.Client, error)
	FindByID(ctx context.Context, id int64) (model.Client, error)

	// 注文はFKのCASCADEで消える
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Client, error)
}
