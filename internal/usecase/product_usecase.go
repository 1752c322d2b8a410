package usecase

import (
	"context"
	"fmt"
	"strings"

	"ordermgr/internal/domain/model"
	repo "ordermgr/internal/repository"

	"go.uber.org/zap"
)

type ProductUsecase struct {
	tx  repo.TransactionManager
	log *zap.Logger
}

// DI
func NewProductUsecase(tx repo.TransactionManager, log *zap.Logger) *ProductUsecase {
	return &ProductUsecase{tx: tx, log: log}
}

type StockProductInput struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Quantity int64   `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price" validate:"finite,gt=0"`
}

func (u *ProductUsecase) StockProduct(ctx context.Context, in StockProductInput) (model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return model.Product{}, err
	}

	var created model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().Create(ctx, model.Product{
			Name:     in.Name,
			Quantity: in.Quantity,
			Price:    in.Price,
		})
		if err != nil {
			return fromRepoError(err, "")
		}
		created = p
		return nil
	})
	if err != nil {
		return model.Product{}, ensureError(err)
	}

	u.log.Info("product stocked",
		zap.Int64("product_id", created.ID),
		zap.String("name", created.Name),
		zap.Int64("quantity", created.Quantity),
		zap.Float64("price", created.Price),
	)
	return created, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewError(KindInvalidInput, "invalid product id")
	}

	var out model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return fromRepoError(err, fmt.Sprintf("product %d not found", productID))
		}
		out = p
		return nil
	})
	if err != nil {
		return model.Product{}, ensureError(err)
	}
	return out, nil
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.Products().List(ctx)
		if err != nil {
			return fromRepoError(err, "")
		}
		out = items
		return nil
	})
	if err != nil {
		return []model.Product{}, ensureError(err)
	}
	return out, nil
}
