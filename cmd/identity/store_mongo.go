package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoCollection is the users collection name.
const MongoCollection = "users"

type mongoUser struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Name           string        `bson:"name"`
	Email          string        `bson:"email"`
	EmailNorm      string        `bson:"email_norm"`
	AvatarURL      string        `bson:"avatar_url"`
	Type           string        `bson:"type"`
	PasswordDigest []byte        `bson:"password_digest"`
	CreatedAt      time.Time     `bson:"created_at"`
}

func (d mongoUser) user() User {
	return User{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Email:          d.Email,
		AvatarURL:      d.AvatarURL,
		Type:           UserType(d.Type),
		PasswordDigest: d.PasswordDigest,
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

// MongoStore implements UserStore over a MongoDB collection.
// User ids are ObjectID hex strings.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a store backed by db's users collection.
func NewMongoStore(db *mongo.Database) (*MongoStore, error) {
	if db == nil {
		return nil, fmt.Errorf("identity: nil mongo database")
	}
	return &MongoStore{coll: db.Collection(MongoCollection)}, nil
}

// EnsureIndexes creates the unique email index. It is idempotent.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_norm", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uq_users_email_norm"),
	})
	if err != nil {
		return fmt.Errorf("identity: ensure mongo indexes: %w", err)
	}
	return nil
}

// CreateUser implements UserStore.
func (s *MongoStore) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	const op = "identity.CreateUser"

	in, emailNorm, err := in.prepare(op)
	if err != nil {
		return User{}, err
	}

	doc := mongoUser{
		ID:             bson.NewObjectID(),
		Name:           in.Name,
		Email:          in.Email,
		EmailNorm:      emailNorm,
		AvatarURL:      in.AvatarURL,
		Type:           string(in.Type),
		PasswordDigest: in.PasswordDigest,
		CreatedAt:      in.Now.UTC().Truncate(time.Millisecond),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ConflictError{Op: op, Field: "email"}
		}
		return User{}, fmt.Errorf("%s: %w", op, err)
	}
	return doc.user(), nil
}

// FindByID implements UserLookup. Ids that are not ObjectIDs are reported as not found.
func (s *MongoStore) FindByID(ctx context.Context, id string) (User, error) {
	const op = "identity.FindByID"

	oid, err := bson.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return User{}, notFound(op)
	}
	return s.findOne(ctx, op, bson.D{{Key: "_id", Value: oid}})
}

// FindByEmail implements UserLookup.
func (s *MongoStore) FindByEmail(ctx context.Context, email string) (User, error) {
	const op = "identity.FindByEmail"

	norm := NormalizeEmail(email)
	if norm == "" {
		return User{}, notFound(op)
	}
	return s.findOne(ctx, op, bson.D{{Key: "email_norm", Value: norm}})
}

func (s *MongoStore) findOne(ctx context.Context, op string, filter bson.D) (User, error) {
	var doc mongoUser
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, notFound(op)
		}
		return User{}, fmt.Errorf("%s: %w", op, err)
	}
	return doc.user(), nil
}
