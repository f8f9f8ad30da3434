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

type ReviewRepo struct{ base }

func NewReviewRepo(db *mongo.Database, bus *events.Bus) *ReviewRepo {
	return &ReviewRepo{base{col: db.Collection(colReviews), bus: bus}}
}

func (r *ReviewRepo) Create(ctx context.Context, rev domain.Review) error {
	rev.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, rev)
	return r.fail("insert", err)
}

// ListApproved returns the publicly visible reviews for a product, newest
// first.
func (r *ReviewRepo) ListApproved(ctx context.Context, productID string) ([]domain.Review, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"product_id": productID, "status": domain.ReviewApproved},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, r.fail("find", err)
	}
	defer cur.Close(ctx)

	out := []domain.Review{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, r.fail("find", err)
	}
	return out, nil
}

// ListByStatus serves the moderation queue. An empty status lists everything.
func (r *ReviewRepo) ListByStatus(ctx context.Context, status string) ([]domain.Review, error) {
	q := bson.M{}
	if status != "" {
		q["status"] = status
	}
	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, r.fail("find", err)
	}
	defer cur.Close(ctx)

	out := []domain.Review{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, r.fail("find", err)
	}
	return out, nil
}

func (r *ReviewRepo) ByID(ctx context.Context, id string) (domain.Review, error) {
	var rev domain.Review
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rev)
	return rev, r.fail("findOne", err)
}

func (r *ReviewRepo) SetStatus(ctx context.Context, id, status string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return r.fail("update", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Aggregate recomputes the approved-review average and count for a product.
func (r *ReviewRepo) Aggregate(ctx context.Context, productID string) (avg float64, count int, err error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product_id": productID, "status": domain.ReviewApproved}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return 0, 0, r.fail("aggregate", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, 0, r.fail("aggregate", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Avg, rows[0].Count, nil
}
