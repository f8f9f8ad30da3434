package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"velora/internal/events"
)

// Collection names in the shared document database.
const (
	colProducts      = "products"
	colCategories    = "categories"
	colSubCategories = "subcategories"
	colReviews       = "reviews"
	colOrders        = "orders"
	colUsers         = "users"
	colSessions      = "sessions"
	colSettings      = "settings"
)

// Connect opens the document database with conservative pool limits and
// verifies it with a short ping.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}
	opts := options.Client().ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetConnectTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the query paths depend on. Safe to run on
// every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		colProducts: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "category_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		colSubCategories: {
			{Keys: bson.D{{Key: "category_id", Value: 1}}},
		},
		colReviews: {
			{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		colOrders: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", col, err)
		}
	}
	return nil
}

// base carries the shared collection handle and the permission-error bus.
type base struct {
	col *mongo.Collection
	bus *events.Bus
}

// fail rebroadcasts permission-denied failures on the event bus before
// returning them, so one listener can report a misconfigured ruleset once
// instead of every caller reporting it separately.
func (b base) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	if b.bus != nil && isPermissionDenied(err) {
		b.bus.Publish(events.PermissionDenied{
			Op:         op,
			Collection: b.col.Name(),
			Err:        err,
			At:         time.Now(),
		})
	}
	return err
}

// Mongo reports authorization failures as command/write error code 13.
func isPermissionDenied(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 13 {
		return true
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 13 {
				return true
			}
		}
	}
	return false
}
