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

type ProductRepo struct{ base }

func NewProductRepo(db *mongo.Database, bus *events.Bus) *ProductRepo {
	return &ProductRepo{base{col: db.Collection(colProducts), bus: bus}}
}

type ProductFilter struct {
	CategoryID    string
	SubCategoryID string
	Status        string // "" = any (admin); public passes PUBLISHED
	Page          int
	PageSize      int
}

func (f ProductFilter) query() bson.M {
	q := bson.M{}
	if f.CategoryID != "" {
		q["category_id"] = f.CategoryID
	}
	if f.SubCategoryID != "" {
		q["subcategory_id"] = f.SubCategoryID
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

func (r *ProductRepo) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 12
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.PageSize)).
		SetLimit(int64(f.PageSize))

	cur, err := r.col.Find(ctx, f.query(), opts)
	if err != nil {
		return nil, r.fail("find", err)
	}
	defer cur.Close(ctx)

	out := []domain.Product{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, r.fail("find", err)
	}
	return out, nil
}

func (r *ProductRepo) BySlug(ctx context.Context, slug string) (domain.Product, error) {
	var p domain.Product
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	return p, r.fail("findOne", err)
}

func (r *ProductRepo) ByID(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, r.fail("findOne", err)
}

var summaryProjection = bson.M{
	"slug": 1, "name": 1, "price": 1, "category_id": 1, "tags": 1,
	"image": bson.M{"$first": "$images"},
}

// Summaries returns the published catalog in the slim shape the AI flows use
// as context.
func (r *ProductRepo) Summaries(ctx context.Context) ([]domain.ProductSummary, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": domain.ProductPublished}}},
		{{Key: "$project", Value: summaryProjection}},
	})
	if err != nil {
		return nil, r.fail("aggregate", err)
	}
	defer cur.Close(ctx)

	out := []domain.ProductSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, r.fail("aggregate", err)
	}
	return out, nil
}

func (r *ProductRepo) SummaryBySlug(ctx context.Context, slug string) (domain.ProductSummary, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"slug": slug, "status": domain.ProductPublished}}},
		{{Key: "$project", Value: summaryProjection}},
		{{Key: "$limit", Value: 1}},
	})
	if err != nil {
		return domain.ProductSummary{}, r.fail("aggregate", err)
	}
	defer cur.Close(ctx)

	var out []domain.ProductSummary
	if err := cur.All(ctx, &out); err != nil {
		return domain.ProductSummary{}, r.fail("aggregate", err)
	}
	if len(out) == 0 {
		return domain.ProductSummary{}, mongo.ErrNoDocuments
	}
	return out[0], nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) error {
	p.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, p)
	return r.fail("insert", err)
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return r.fail("replace", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProductRepo) SetStatus(ctx context.Context, id, status string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return r.fail("update", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetVariantStock writes one variant's stock level, addressing the variant by
// its (size, color) identity inside the product document.
func (r *ProductRepo) SetVariantStock(ctx context.Context, productID, size, color string, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{"variants.$[v].stock": qty, "updated_at": time.Now().UTC()}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"v.size": size, "v.color": color}},
		}),
	)
	if err != nil {
		return r.fail("update", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetRating writes the denormalized review aggregate onto the product.
func (r *ProductRepo) SetRating(ctx context.Context, productID string, rating float64, count int) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": productID},
		bson.M{"$set": bson.M{"rating": rating, "review_count": count}})
	return r.fail("update", err)
}
