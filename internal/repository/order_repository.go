package repository

import (
	"context"

	"ordermgr/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Delete(ctx context.Context, orderID int64) error

	ListByClientID(ctx context.Context, clientID int64) ([]model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
}
