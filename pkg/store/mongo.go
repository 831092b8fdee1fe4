package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/tavola/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the MongoDB-backed Store driver.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo opens a client against MONGO_URI and verifies the connection.
func ConnectMongo(ctx context.Context) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(config.MongoURI()))
	if err != nil {
		return nil, fmt.Errorf("store: mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("store: mongo ping: %w", err)
	}

	return &Mongo{client: client, db: client.Database(config.MongoDB())}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Find(ctx context.Context, collection string, filter Filter, out interface{}) error {
	match := bson.M{}
	for k, v := range filter {
		match[k] = v
	}

	cur, err := m.db.Collection(collection).Find(ctx, match)
	if err != nil {
		return fmt.Errorf("store: find %s: %w", collection, err)
	}

	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("store: decode %s: %w", collection, err)
	}
	return nil
}

func (m *Mongo) Get(ctx context.Context, collection, id string, out interface{}) error {
	err := m.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: get %s/%s: %w", collection, id, err)
	}
	return nil
}

func (m *Mongo) Create(ctx context.Context, collection string, doc interface{}) error {
	if _, err := m.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("store: create %s: %w", collection, err)
	}
	return nil
}

func (m *Mongo) Patch(ctx context.Context, collection, id string, changes Filter) error {
	set := bson.M{}
	for k, v := range changes {
		set[k] = v
	}

	res, err := m.db.Collection(collection).UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("store: patch %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Remove(ctx context.Context, collection, id string) error {
	res, err := m.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("store: remove %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
