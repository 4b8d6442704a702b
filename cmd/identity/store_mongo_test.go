package identity

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestMongoUser_ToUser(t *testing.T) {
	oid := bson.NewObjectID()
	created := time.Date(2026, 4, 5, 6, 7, 8, 0, time.FixedZone("x", 3600))

	u := mongoUser{
		ID:             oid,
		Name:           "Ann",
		Email:          "Ann@example.com",
		EmailNorm:      "ann@example.com",
		Type:           "pro",
		PasswordDigest: []byte{1},
		CreatedAt:      created,
	}.user()

	assert.Equal(t, oid.Hex(), u.ID)
	assert.Equal(t, UserTypePro, u.Type)
	assert.Equal(t, time.UTC, u.CreatedAt.Location())
}

func TestNewMongoStore_NilDatabase(t *testing.T) {
	_, err := NewMongoStore(nil)
	assert.Error(t, err)
}

// Opt-in: requires SIXCITIES_MONGO_URI.
func TestMongoStore_Integration(t *testing.T) {
	uri := strings.TrimSpace(os.Getenv("SIXCITIES_MONGO_URI"))
	if uri == "" {
		t.Skip("SIXCITIES_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("mongo unreachable: %v", err)
	}

	db := client.Database("sixcities_test_" + bson.NewObjectID().Hex())
	defer func() { _ = db.Drop(context.Background()) }()

	s, err := NewMongoStore(db)
	require.NoError(t, err)
	require.NoError(t, s.EnsureIndexes(ctx))

	u, err := s.CreateUser(ctx, CreateUserInput{Name: "Ann", Email: "Ann@Example.com", PasswordDigest: []byte{1, 2}})
	require.NoError(t, err)

	got, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, []byte{1, 2}, got.PasswordDigest)

	_, err = s.FindByEmail(ctx, "ann@example.COM")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, CreateUserInput{Name: "Dup", Email: "ann@example.com", PasswordDigest: []byte{3}})
	assert.True(t, IsConflict(err))

	_, err = s.FindByID(ctx, "not-an-object-id")
	assert.True(t, IsNotFound(err))
}
