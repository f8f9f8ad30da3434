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

type OrderRepo struct{ base }

func NewOrderRepo(db *mongo.Database, bus *events.Bus) *OrderRepo {
	return &OrderRepo{base{col: db.Collection(colOrders), bus: bus}}
}

func (r *OrderRepo) Create(ctx context.Context, o domain.Order) error {
	o.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, o)
	return r.fail("insert", err)
}

func (r *OrderRepo) ByID(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	return o, r.fail("findOne", err)
}

// List returns orders newest first, optionally filtered by status.
func (r *OrderRepo) List(ctx context.Context, status string, page, pageSize int) ([]domain.Order, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	q := bson.M{}
	if status != "" {
		q["status"] = status
	}
	cur, err := r.col.Find(ctx, q, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page-1)*pageSize)).
		SetLimit(int64(pageSize)))
	if err != nil {
		return nil, r.fail("find", err)
	}
	defer cur.Close(ctx)

	out := []domain.Order{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, r.fail("find", err)
	}
	return out, nil
}

func (r *OrderRepo) SetStatus(ctx context.Context, id, status string) error {
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
