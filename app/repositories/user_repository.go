package repositories

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/pkg/store"
)

// UserRepository handles store operations for User.
type UserRepository struct {
	store store.Store
}

func NewUserRepository(st store.Store) *UserRepository {
	return &UserRepository{store: st}
}

// ByID looks up a user by primary key. A missing id yields (nil, nil).
func (r *UserRepository) ByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.store.Get(ctx, store.Users, id, &user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ByUsername looks up a user by their unique username.
func (r *UserRepository) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var users []models.User
	if err := r.store.Find(ctx, store.Users, store.Filter{"username": username}, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// All returns every user.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.store.Find(ctx, store.Users, nil, &users)
	return users, err
}

// Create persists a new user, assigning its id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = store.NewID()
	}
	return r.store.Create(ctx, store.Users, user)
}
