package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"sixcities/cmd/identity"
)

// userBackend is the selected user store plus the lifecycle hooks the app needs around it.
type userBackend struct {
	kind  string
	users identity.UserStore

	// ping is nil for the in-memory store.
	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (b userBackend) persistent() bool { return b.ping != nil }

// newUserBackend opens the store named by cfg.Store. The app owns pool and client lifecycles;
// the identity stores never close them.
func newUserBackend(ctx context.Context, cfg Config, log Logger) (userBackend, error) {
	switch cfg.Store {
	case StorePostgres:
		return newPostgresBackend(ctx, cfg, log)
	case StoreMongo:
		return newMongoBackend(ctx, cfg, log)
	default:
		log.Info("store.memory", "note", "users are lost on restart")
		return userBackend{
			kind:  StoreMemory,
			users: identity.NewMemoryStore(),
			close: func(context.Context) error { return nil },
		}, nil
	}
}

func newPostgresBackend(ctx context.Context, cfg Config, log Logger) (userBackend, error) {
	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return userBackend{}, err
	}
	if err := identity.MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return userBackend{}, err
	}
	st, err := identity.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return userBackend{}, err
	}

	log.Info("store.postgres", "max_conns", pool.Config().MaxConns)
	return userBackend{
		kind:  StorePostgres,
		users: st,
		ping:  func(ctx context.Context) error { return PingDB(ctx, pool, 2*time.Second) },
		close: closePool(pool),
	}, nil
}

func newMongoBackend(ctx context.Context, cfg Config, log Logger) (userBackend, error) {
	client, err := NewMongoClient(ctx, cfg)
	if err != nil {
		return userBackend{}, err
	}
	st, err := identity.NewMongoStore(client.Database(cfg.MongoDB))
	if err == nil {
		err = st.EnsureIndexes(ctx)
	}
	if err != nil {
		_ = client.Disconnect(context.Background())
		return userBackend{}, err
	}

	log.Info("store.mongo", "db", cfg.MongoDB)
	return userBackend{
		kind:  StoreMongo,
		users: st,
		ping:  func(ctx context.Context) error { return PingMongo(ctx, client, 2*time.Second) },
		close: func(ctx context.Context) error { return client.Disconnect(ctx) },
	}, nil
}

func closePool(pool *pgxpool.Pool) func(context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}

