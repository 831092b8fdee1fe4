package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/app/repositories"
	"github.com/shashiranjanraj/tavola/pkg/faults"
	"github.com/shashiranjanraj/tavola/pkg/logger"
)

// OrderService creates orders on behalf of authenticated users.
type OrderService struct {
	orders *repositories.OrderRepository
	items  *repositories.ItemRepository
}

func NewOrderService(orders *repositories.OrderRepository, items *repositories.ItemRepository) *OrderService {
	return &OrderService{orders: orders, items: items}
}

// Create places an order for subject. The owner always comes from the
// verified credential; any user reference in client input is ignored by
// construction. Item ids may repeat — repetition implies quantity and each
// repetition counts toward the total.
func (s *OrderService) Create(ctx context.Context, subject string, itemIDs []string, comment string) (*models.Order, error) {
	missing, err := s.items.Missing(ctx, itemIDs)
	if err != nil {
		logger.WithCtx(ctx).Error("order item check failed", "error", err)
		return nil, faults.Internal()
	}
	if len(missing) > 0 {
		return nil, faults.Invalid("itemIds", fmt.Sprintf("Unknown item ids: %s", strings.Join(missing, ", ")))
	}

	items, err := s.items.ByIDs(ctx, itemIDs)
	if err != nil {
		logger.WithCtx(ctx).Error("order item fetch failed", "error", err)
		return nil, faults.Internal()
	}

	now := time.Now().UTC()
	order := &models.Order{
		UserID:        subject,
		ItemIDs:       itemIDs,
		Total:         sumPrices(ctx, items),
		StatusMessage: "Order received",
		Comment:       comment,
		Fulfilled:     false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		logger.WithCtx(ctx).Error("order create failed", "error", err)
		return nil, faults.Internal()
	}

	created, err := s.orders.ByID(ctx, order.ID)
	if err != nil {
		logger.WithCtx(ctx).Error("order read-back failed", "error", err)
		return nil, faults.Internal()
	}
	return created, nil
}

// sumPrices totals item prices in cents so decimal-as-text survives without
// floating point drift. A malformed stored price is a schema violation: it
// counts as zero and is logged.
func sumPrices(ctx context.Context, items []models.Item) string {
	var cents int64
	for _, item := range items {
		c, err := parseCents(item.Price)
		if err != nil {
			logger.WithCtx(ctx).Warn("item has malformed price", "item_id", item.ID, "price", item.Price)
			continue
		}
		cents += c
	}
	return formatCents(cents)
}

func parseCents(price string) (int64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(price), ".")
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("malformed price %q", price)
	}

	var f int64
	switch len(frac) {
	case 0:
	case 1:
		f, err = strconv.ParseInt(frac, 10, 64)
		f *= 10
	case 2:
		f, err = strconv.ParseInt(frac, 10, 64)
	default:
		return 0, fmt.Errorf("malformed price %q", price)
	}
	if err != nil || f < 0 {
		return 0, fmt.Errorf("malformed price %q", price)
	}

	return w*100 + f, nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
