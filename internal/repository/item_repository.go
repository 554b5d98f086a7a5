package repository

import (
	"context"

	"github.com/shinyyama/items-api/internal/model"
	"gorm.io/gorm"
)

// ItemRepository persists items. Missing rows surface as gorm.ErrRecordNotFound.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uint64) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, id uint64, patch model.ItemPatch) (*model.Item, error)
	Delete(ctx context.Context, id uint64) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint64) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context) ([]model.Item, error) {
	items := []model.Item{}
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update loads, merges and saves the row in one transaction so a failed save
// leaves the stored record untouched.
func (r *itemRepository) Update(ctx context.Context, id uint64, patch model.ItemPatch) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		if patch.Empty() {
			return nil
		}
		patch.Apply(&item)
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
