package repository

import (
	"context"

	"ordermgr/internal/domain/model"
	repo "ordermgr/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&order).Error; err != nil {
		return 0, translateError(err)
	}
	return order.ID, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&o).Error
	if err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.Order{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) ListByClientID(ctx context.Context, clientID int64) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("order_id asc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, translateError(err)
	}
	return items, nil
}

func (r *OrderGormRepository) List(ctx context.Context) ([]model.Order, error) {
	var items []model.Order
	if err := r.db.WithContext(ctx).Order("order_id asc").Find(&items).Error; err != nil {
		return []model.Order{}, translateError(err)
	}
	return items, nil
}
