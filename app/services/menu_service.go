package services

import (
	"context"

	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/app/repositories"
	"github.com/shashiranjanraj/tavola/config"
	"github.com/shashiranjanraj/tavola/pkg/cache"
	"github.com/shashiranjanraj/tavola/pkg/collection"
	"github.com/shashiranjanraj/tavola/pkg/faults"
	"github.com/shashiranjanraj/tavola/pkg/logger"
)

const menuCacheKey = "menu:view"

// MenuService builds the derived menu view: all items partitioned into one
// bucket per category. The view is cached briefly and invalidated whenever
// an item mutation lands.
type MenuService struct {
	items *repositories.ItemRepository
}

func NewMenuService(items *repositories.ItemRepository) *MenuService {
	return &MenuService{items: items}
}

// Build computes the menu. Items whose category is outside the enum are a
// schema violation: they are excluded from every bucket and logged.
func (s *MenuService) Build(ctx context.Context) (*models.Menu, error) {
	var cached models.Menu
	if cache.Get(menuCacheKey, &cached) {
		return &cached, nil
	}

	items, err := s.items.All(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("menu item fetch failed", "error", err)
		return nil, faults.Internal()
	}

	buckets := collection.GroupBy(items, func(i models.Item) string { return i.Category })
	for category := range buckets {
		if !models.ValidCategory(category) {
			logger.WithCtx(ctx).Warn("items with unrecognized category excluded from menu",
				"category", category, "count", len(buckets[category]))
		}
	}

	menu := &models.Menu{
		Entrees:    orEmpty(buckets[models.CategoryEntre]),
		Sides:      orEmpty(buckets[models.CategorySide]),
		Appetizers: orEmpty(buckets[models.CategoryAppetizer]),
		Deserts:    orEmpty(buckets[models.CategoryDesert]),
		Drinks:     orEmpty(buckets[models.CategoryDrink]),
		Upsells:    orEmpty(buckets[models.CategoryUpsell]),
	}

	if err := cache.Set(menuCacheKey, menu, config.MenuCacheTTL()); err != nil {
		logger.WithCtx(ctx).Warn("menu cache write failed", "error", err)
	}

	return menu, nil
}

// Invalidate drops the cached view. Called after item mutations.
func (s *MenuService) Invalidate() {
	if err := cache.Del(menuCacheKey); err != nil {
		logger.Warn("menu cache invalidation failed", "error", err)
	}
}

func orEmpty(items []models.Item) []models.Item {
	if items == nil {
		return []models.Item{}
	}
	return items
}
