package identity

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration tests are opt-in and require SIXCITIES_DATABASE_URL.

func mustOpenTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("SIXCITIES_DATABASE_URL"))
	if dsn == "" {
		t.Skip("SIXCITIES_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("postgres unreachable: %v", err)
	}
	return pool
}

func TestPostgresStore_Integration(t *testing.T) {
	pool := mustOpenTestPool(t)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := MigratePostgres(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	s, err := NewPostgresStore(pool)
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	email := "it-" + time.Now().UTC().Format("20060102150405.000000000") + "@Example.com"
	u, err := s.CreateUser(ctx, CreateUserInput{Name: "Integration", Email: email, PasswordDigest: []byte{1, 2, 3}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})

	got, err := s.FindByEmail(ctx, strings.ToUpper(email))
	if err != nil || got.ID != u.ID {
		t.Fatalf("FindByEmail = %+v, %v", got, err)
	}

	_, err = s.CreateUser(ctx, CreateUserInput{Name: "Dup", Email: strings.ToLower(email), PasswordDigest: []byte{4}})
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
