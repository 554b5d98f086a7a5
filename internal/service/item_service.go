package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shinyyama/items-api/internal/model"
	"github.com/shinyyama/items-api/internal/repository"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type ItemService interface {
	Create(ctx context.Context, name, description string, price float64, quantity int) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, id uint64) (*model.Item, error)
	Update(ctx context.Context, id uint64, patch model.ItemPatch) (*model.Item, error)
	Delete(ctx context.Context, id uint64) error
}

type itemService struct {
	repo repository.ItemRepository
}

func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

// Price and quantity are stored as given; negative values are accepted.
func (s *itemService) Create(ctx context.Context, name, description string, price float64, quantity int) (*model.Item, error) {
	item := &model.Item{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *itemService) Get(ctx context.Context, id uint64) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate("get item", err)
	}
	return item, nil
}

func (s *itemService) Update(ctx context.Context, id uint64, patch model.ItemPatch) (*model.Item, error) {
	item, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, translate("update item", err)
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate("delete item", err)
	}
	return nil
}

func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
