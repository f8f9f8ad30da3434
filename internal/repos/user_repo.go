package repos

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"velora/internal/domain"
	"velora/internal/events"
)

// UserRepo also owns the sessions collection that binds a browser session id
// to a signed-in user.
type UserRepo struct {
	base
	sessions *mongo.Collection
}

func NewUserRepo(db *mongo.Database, bus *events.Bus) *UserRepo {
	return &UserRepo{
		base:     base{col: db.Collection(colUsers), bus: bus},
		sessions: db.Collection(colSessions),
	}
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, r.fail("findOne", err)
}

func (r *UserRepo) ByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, r.fail("findOne", err)
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	_, err := r.col.InsertOne(ctx, u)
	return r.fail("insert", err)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, r.fail("find", err)
	}
	defer cur.Close(ctx)

	out := []domain.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, r.fail("find", err)
	}
	return out, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.sessions.DeleteMany(ctx, bson.M{"user_id": id}); err != nil {
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

type sessionDoc struct {
	ID        string    `bson:"_id"` // the browser session id
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// BindSession attaches a signed-in user to a browser session.
func (r *UserRepo) BindSession(ctx context.Context, sessionID, userID string) error {
	_, err := r.sessions.ReplaceOne(ctx,
		bson.M{"_id": sessionID},
		sessionDoc{ID: sessionID, UserID: userID, CreatedAt: time.Now().UTC()},
		optionsReplaceUpsert())
	return r.fail("replace", err)
}

func (r *UserRepo) UnbindSession(ctx context.Context, sessionID string) error {
	_, err := r.sessions.DeleteOne(ctx, bson.M{"_id": sessionID})
	return r.fail("delete", err)
}

// SessionUser resolves a session id to its bound user, if any.
func (r *UserRepo) SessionUser(ctx context.Context, sessionID string) (domain.User, error) {
	var s sessionDoc
	if err := r.sessions.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&s); err != nil {
		return domain.User{}, r.fail("findOne", err)
	}
	return r.ByID(ctx, s.UserID)
}
