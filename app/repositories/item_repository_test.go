package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/app/repositories"
	"github.com/shashiranjanraj/tavola/pkg/store"
	"github.com/shashiranjanraj/tavola/pkg/workerpool"
)

func newItemRepo(t *testing.T) (*repositories.ItemRepository, store.Store) {
	t.Helper()
	st := store.NewMemory()
	pool := workerpool.New(4)
	t.Cleanup(pool.Shutdown)
	return repositories.NewItemRepository(st, pool), st
}

func seed(t *testing.T, repo *repositories.ItemRepository, item models.Item) models.Item {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &item))
	return item
}

func TestItemByID(t *testing.T) {
	repo, _ := newItemRepo(t)
	ctx := context.Background()

	created := seed(t, repo, models.Item{Description: "Fries", Category: models.CategorySide, Price: "3.50"})

	got, err := repo.ByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Fries", got.Description)

	// A missing id is a null, not an error.
	got, err = repo.ByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestItemByIDsPreservesOrderAndRepetition(t *testing.T) {
	repo, _ := newItemRepo(t)
	ctx := context.Background()

	a := seed(t, repo, models.Item{Description: "A", Category: models.CategorySide, Price: "1.00"})
	b := seed(t, repo, models.Item{Description: "B", Category: models.CategorySide, Price: "2.00"})

	items, err := repo.ByIDs(ctx, []string{b.ID, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{b.ID, a.ID, b.ID}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestItemByIDsSkipsMissing(t *testing.T) {
	repo, _ := newItemRepo(t)
	ctx := context.Background()

	a := seed(t, repo, models.Item{Description: "A", Category: models.CategorySide, Price: "1.00"})

	items, err := repo.ByIDs(ctx, []string{"gone", a.ID, "also-gone"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)
}

func TestItemByIDsCancelledContext(t *testing.T) {
	repo, _ := newItemRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ByIDs(ctx, []string{"x", "y"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestItemMissing(t *testing.T) {
	repo, _ := newItemRepo(t)
	ctx := context.Background()

	a := seed(t, repo, models.Item{Description: "A", Category: models.CategorySide, Price: "1.00"})

	missing, err := repo.Missing(ctx, []string{a.ID, "ghost-1", "ghost-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost-1", "ghost-2"}, missing)
}

func TestItemPatchAndRemove(t *testing.T) {
	repo, _ := newItemRepo(t)
	ctx := context.Background()

	created := seed(t, repo, models.Item{Description: "Fries", Category: models.CategorySide, Price: "3.50"})

	patched, err := repo.Patch(ctx, created.ID, store.Filter{"itemPrice": "4.00"})
	require.NoError(t, err)
	require.NotNil(t, patched)
	assert.Equal(t, "4.00", patched.Price)

	patched, err = repo.Patch(ctx, "no-such-id", store.Filter{"itemPrice": "4.00"})
	require.NoError(t, err)
	assert.Nil(t, patched)

	removed, err := repo.Remove(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, created.ID, removed.ID)

	removed, err = repo.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, removed)
}
