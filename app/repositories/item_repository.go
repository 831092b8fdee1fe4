package repositories

import (
	"context"
	"errors"
	"sync"

	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/pkg/store"
	"github.com/shashiranjanraj/tavola/pkg/workerpool"
)

// ItemRepository handles store operations for Item.
type ItemRepository struct {
	store store.Store
	pool  *workerpool.Pool
}

func NewItemRepository(st store.Store, pool *workerpool.Pool) *ItemRepository {
	return &ItemRepository{store: st, pool: pool}
}

// All returns every item.
func (r *ItemRepository) All(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.store.Find(ctx, store.Items, nil, &items)
	return items, err
}

// ByCategory returns all items in one menu category.
func (r *ItemRepository) ByCategory(ctx context.Context, category string) ([]models.Item, error) {
	var items []models.Item
	err := r.store.Find(ctx, store.Items, store.Filter{"menuCategory": category}, &items)
	return items, err
}

// ByID looks up one item. A missing id yields (nil, nil) so the caller can
// surface a null per output nullability.
func (r *ItemRepository) ByID(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	err := r.store.Get(ctx, store.Items, id, &item)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ByIDs resolves a list of item references, preserving order and repetition
// (an order that references the same item twice gets it back twice). Missing
// ids are skipped. Fetches fan out through the worker pool and fan back in;
// once ctx is cancelled no further fetches are issued.
func (r *ItemRepository) ByIDs(ctx context.Context, ids []string) ([]models.Item, error) {
	results := make([]*models.Item, len(ids))
	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)

	for i, id := range ids {
		if ctx.Err() != nil {
			break
		}

		i, id := i, id
		wg.Add(1)
		fetch := func() {
			defer wg.Done()
			item, err := r.ByID(ctx, id)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			results[i] = item
		}
		if err := r.pool.SubmitWait(fetch); err != nil {
			fetch() // pool shutting down: resolve inline
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(ids))
	for _, it := range results {
		if it != nil {
			items = append(items, *it)
		}
	}
	return items, nil
}

// Missing returns the subset of ids that have no backing item.
func (r *ItemRepository) Missing(ctx context.Context, ids []string) ([]string, error) {
	var missing []string
	for _, id := range ids {
		item, err := r.ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// Create persists a new item, assigning its id.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = store.NewID()
	}
	return r.store.Create(ctx, store.Items, item)
}

// Patch applies changes to an existing item and returns the fresh record.
// A missing id yields (nil, nil).
func (r *ItemRepository) Patch(ctx context.Context, id string, changes store.Filter) (*models.Item, error) {
	err := r.store.Patch(ctx, store.Items, id, changes)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.ByID(ctx, id)
}

// Remove deletes an item and returns the removed record.
// A missing id yields (nil, nil).
func (r *ItemRepository) Remove(ctx context.Context, id string) (*models.Item, error) {
	item, err := r.ByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}

	err = r.store.Remove(ctx, store.Items, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}
