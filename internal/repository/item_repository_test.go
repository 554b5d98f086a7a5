package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shinyyama/items-api/internal/model"
	"github.com/shinyyama/items-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func newRepo(t *testing.T) ItemRepository {
	t.Helper()
	return NewItemRepository(testdb.Open(t))
}

func TestItemRepository_CreateAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	seen := map[uint64]bool{}
	for i := 0; i < 5; i++ {
		// identical payloads are allowed
		item := &model.Item{Name: "Widget", Description: "A widget", Price: 9.99, Quantity: 5}
		require.NoError(t, repo.Create(ctx, item))
		require.NotZero(t, item.ID)
		assert.False(t, seen[item.ID], "duplicate id %d", item.ID)
		seen[item.ID] = true
	}
}

func TestItemRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	created := &model.Item{Name: "Widget", Description: "A widget", Price: 9.99, Quantity: 5}
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	_, err = repo.FindByID(ctx, created.ID+100)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestItemRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	require.NoError(t, repo.Create(ctx, &model.Item{Name: "a", Description: "a", Price: 1, Quantity: 1}))
	require.NoError(t, repo.Create(ctx, &model.Item{Name: "b", Description: "b", Price: 2, Quantity: 2}))

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "b", items[1].Name)
}

func TestItemRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	item := &model.Item{Name: "Widget", Description: "A widget", Price: 9.99, Quantity: 5}
	require.NoError(t, repo.Create(ctx, item))

	updated, err := repo.Update(ctx, item.ID, model.ItemPatch{Quantity: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, model.Item{ID: item.ID, Name: "Widget", Description: "A widget", Price: 9.99, Quantity: 3}, *updated)

	stored, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *stored)

	// zero values in a present slot are written
	updated, err = repo.Update(ctx, item.ID, model.ItemPatch{Price: ptr(0.0), Name: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.Price)
	assert.Equal(t, "", updated.Name)
	assert.Equal(t, 3, updated.Quantity)
}

func TestItemRepository_UpdateEmptyPatch(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	item := &model.Item{Name: "Widget", Description: "A widget", Price: 9.99, Quantity: 5}
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.Update(ctx, item.ID, model.ItemPatch{})
	require.NoError(t, err)
	assert.Equal(t, *item, *got)
}

func TestItemRepository_UpdateMissing(t *testing.T) {
	_, err := newRepo(t).Update(context.Background(), 42, model.ItemPatch{Quantity: ptr(1)})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestItemRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	item := &model.Item{Name: "Widget", Description: "A widget", Price: 9.99, Quantity: 5}
	require.NoError(t, repo.Create(ctx, item))

	require.NoError(t, repo.Delete(ctx, item.ID))
	_, err := repo.FindByID(ctx, item.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// a second delete of the same id never succeeds
	err = repo.Delete(ctx, item.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
