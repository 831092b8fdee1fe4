// Package store is the persistence collaborator: simple CRUD primitives over
// named collections. Resolvers and services never embed storage-specific
// query syntax; they speak Filter maps and ids.
//
// Two drivers exist: Mongo for deployments and Memory for tests and local
// development. STORE_DRIVER selects between them.
package store

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/tavola/config"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names used across the application.
const (
	Users  = "users"
	Items  = "items"
	Orders = "orders"
)

// ErrNotFound is returned by Get, Patch, and Remove when no document
// matches the given id.
var ErrNotFound = errors.New("store: document not found")

// Filter is a field-equality match on document fields (json/bson names).
type Filter map[string]interface{}

// Store provides CRUD primitives over document collections.
//
// Find and Get decode into out, which must be a pointer (a *[]T for Find,
// a *T for Get). Documents carry their id in the "_id" field; callers
// assign ids with NewID before Create.
type Store interface {
	Find(ctx context.Context, collection string, filter Filter, out interface{}) error
	Get(ctx context.Context, collection, id string, out interface{}) error
	Create(ctx context.Context, collection string, doc interface{}) error
	Patch(ctx context.Context, collection, id string, changes Filter) error
	Remove(ctx context.Context, collection, id string) error
}

// NewID returns a fresh globally-unique document id (ObjectID hex, so ids
// are identical in shape across both drivers).
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// Connect opens the configured driver.
func Connect(ctx context.Context) (Store, error) {
	switch config.StoreDriver() {
	case "mongo":
		return ConnectMongo(ctx)
	default:
		return NewMemory(), nil
	}
}
