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

// CategoryRepo covers both categories and their subcategories; the two
// collections are always edited together from the admin surface.
type CategoryRepo struct {
	base
	subs *mongo.Collection
}

func NewCategoryRepo(db *mongo.Database, bus *events.Bus) *CategoryRepo {
	return &CategoryRepo{
		base: base{col: db.Collection(colCategories), bus: bus},
		subs: db.Collection(colSubCategories),
	}
}

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, r.fail("find", err)
	}
	defer cur.Close(ctx)

	out := []domain.Category{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, r.fail("find", err)
	}
	return out, nil
}

func (r *CategoryRepo) ByID(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	return c, r.fail("findOne", err)
}

func (r *CategoryRepo) Create(ctx context.Context, c domain.Category) error {
	c.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, c)
	return r.fail("insert", err)
}

func (r *CategoryRepo) Update(ctx context.Context, c domain.Category) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return r.fail("replace", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a category together with its subcategories.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.subs.DeleteMany(ctx, bson.M{"category_id": id}); err != nil {
		return r.fail("delete", err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return r.fail("delete", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *CategoryRepo) SubCategories(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	q := bson.M{}
	if categoryID != "" {
		q["category_id"] = categoryID
	}
	cur, err := r.subs.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, r.fail("find", err)
	}
	defer cur.Close(ctx)

	out := []domain.SubCategory{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, r.fail("find", err)
	}
	return out, nil
}

func (r *CategoryRepo) CreateSub(ctx context.Context, s domain.SubCategory) error {
	s.CreatedAt = time.Now().UTC()
	_, err := r.subs.InsertOne(ctx, s)
	return r.fail("insert", err)
}

func (r *CategoryRepo) UpdateSub(ctx context.Context, s domain.SubCategory) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := r.subs.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return r.fail("replace", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *CategoryRepo) DeleteSub(ctx context.Context, id string) error {
	res, err := r.subs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return r.fail("delete", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
