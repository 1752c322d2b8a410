package repository

import (
	"context"

	"ordermgr/internal/domain/model"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("product_id = ?", id).First(&p).Error
	if err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

// 在庫がminQty以上あるときだけ取得
func (r *ProductGormRepository) FindByIDWithMinQuantity(ctx context.Context, id int64, minQty int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND quantity >= ?", id, minQty).
		First(&p).Error
	if err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

func (r *ProductGormRepository) List(ctx context.Context) ([]model.Product, error) {
	var items []model.Product
	if err := r.db.WithContext(ctx).Order("product_id asc").Find(&items).Error; err != nil {
		return []model.Product{}, translateError(err)
	}
	return items, nil
}
