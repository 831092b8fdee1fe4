package repositories

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/pkg/store"
)

// OrderRepository handles store operations for Order.
type OrderRepository struct {
	store store.Store
}

func NewOrderRepository(st store.Store) *OrderRepository {
	return &OrderRepository{store: st}
}

// ByID looks up an order by primary key. A missing id yields (nil, nil).
func (r *OrderRepository) ByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.store.Get(ctx, store.Orders, id, &order)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// All returns every order ever placed.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.store.Find(ctx, store.Orders, nil, &orders)
	return orders, err
}

// ByUser returns all orders placed by one user.
func (r *OrderRepository) ByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.store.Find(ctx, store.Orders, store.Filter{"userId": userID}, &orders)
	return orders, err
}

// PendingByUser returns a user's unfulfilled orders.
func (r *OrderRepository) PendingByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.store.Find(ctx, store.Orders, store.Filter{"userId": userID, "fulfilled": false}, &orders)
	return orders, err
}

// Create persists a new order, assigning its id.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = store.NewID()
	}
	return r.store.Create(ctx, store.Orders, order)
}
