package repository

import (
	"context"
	"fmt"

	"ordermgr/internal/domain/model"
	repo "ordermgr/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす。DBのCHECK(quantity >= 0)も最後の砦
func (r *InventoryGormRepository) Decrease(ctx context.Context, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("product_id = ? AND quantity >= ?", productID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))

	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d cannot drop below zero", repo.ErrConstraintViolation, productID)
	}
	return nil
}
