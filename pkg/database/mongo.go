// Package database owns the MongoDB connection and the collection handles
// used by the repositories.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/huseynesedov/portfolio-backend/config"
)

// Collection names match the layout the frontend was built against.
const (
	WorksCollection = "works"
	AboutCollection = "about"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

// Connect opens the MongoDB connection, verifies it with a ping, and
// ensures the indexes the application relies on. Returns an error instead
// of exiting so the caller can shut down gracefully.
func Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.MongoURL()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	DB = client.Database(config.MongoDB())

	if err := ensureIndexes(ctx); err != nil {
		return err
	}

	return nil
}

// ensureIndexes creates the unique index on works.name. The storage layer
// is the authoritative duplicate-name guard; the application-level
// existence check is only the fast path with a friendlier error.
func ensureIndexes(ctx context.Context) error {
	_, err := DB.Collection(WorksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: ensure works.name index: %w", err)
	}
	return nil
}

// Disconnect closes the client. Safe to call when Connect never succeeded.
func Disconnect(ctx context.Context) {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = Client.Disconnect(ctx)
}

// Works returns the works collection handle.
func Works() *mongo.Collection { return DB.Collection(WorksCollection) }

// About returns the about collection handle.
func About() *mongo.Collection { return DB.Collection(AboutCollection) }

// IsDup reports whether err is a MongoDB duplicate-key error, the signal
// that the unique works.name index rejected an insert.
func IsDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
