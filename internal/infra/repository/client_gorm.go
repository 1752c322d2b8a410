package repository

import (
	"context"

	"ordermgr/internal/domain/model"
	repo "ordermgr/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) Create(ctx context.Context, c model.Client) (model.Client, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&c).Error; err != nil {
		return model.Client{}, translateError(err)
	}
	return c, nil
}

func (r *ClientGormRepository) FindByID(ctx context.Context, id int64) (model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Where("client_id = ?", id).First(&c).Error
	if err != nil {
		return model.Client{}, translateError(err)
	}
	return c, nil
}

// 注文はON DELETE CASCADE
func (r *ClientGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("client_id = ?", id).Delete(&model.Client{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ClientGormRepository) List(ctx context.Context) ([]model.Client, error) {
	var items []model.Client
	if err := r.db.WithContext(ctx).Order("client_id asc").Find(&items).Error; err != nil {
		return []model.Client{}, translateError(err)
	}
	return items, nil
}
