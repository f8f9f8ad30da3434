package repos

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"velora/internal/domain"
	"velora/internal/events"
)

type SettingsRepo struct{ base }

func NewSettingsRepo(db *mongo.Database, bus *events.Bus) *SettingsRepo {
	return &SettingsRepo{base{col: db.Collection(colSettings), bus: bus}}
}

// Get returns the store configuration, or the given defaults if none has been
// saved yet.
func (r *SettingsRepo) Get(ctx context.Context, defaults domain.StoreSettings) (domain.StoreSettings, error) {
	var s domain.StoreSettings
	err := r.col.FindOne(ctx, bson.M{"_id": domain.SettingsDocID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		defaults.ID = domain.SettingsDocID
		return defaults, nil
	}
	return s, r.fail("findOne", err)
}

func (r *SettingsRepo) Put(ctx context.Context, s domain.StoreSettings) error {
	s.ID = domain.SettingsDocID
	s.UpdatedAt = time.Now().UTC()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": domain.SettingsDocID}, s, optionsReplaceUpsert())
	return r.fail("replace", err)
}

func optionsReplaceUpsert() *options.ReplaceOptions {
	return options.Replace().SetUpsert(true)
}
