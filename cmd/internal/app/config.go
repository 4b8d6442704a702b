package app

import (
	"fmt"
	"time"

	authapi "sixcities/cmd/internal/auth/api"
	"sixcities/cmd/internal/auth/session"
	"sixcities/cmd/security/password"
)

// Store kinds selectable with SIXCITIES_STORE.
const (
	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	Store string

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	MongoURI string
	MongoDB  string

	// If true, /readyz returns 503 unless a persistent store is configured and reachable.
	ReadinessRequireDB bool

	Session  session.Config
	Password password.Config
	Pepper   string
	API      authapi.Config
}

// LoadConfig loads Config from environment variables with defaults.
// Every failure wraps ErrMisconfigured.
func LoadConfig() (Config, error) {
	var env envReader

	cfg := Config{
		HTTPAddr:  env.String("SIXCITIES_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  env.String("SIXCITIES_LOG_LEVEL", "info"),
		LogFormat: env.OneOf("SIXCITIES_LOG_FORMAT", "json", "json", "text", "pretty"),

		ReadHeaderTimeout: env.Duration("SIXCITIES_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       env.Duration("SIXCITIES_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      env.Duration("SIXCITIES_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       env.Duration("SIXCITIES_HTTP_IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    env.Int("SIXCITIES_HTTP_MAX_HEADER_BYTES", 1<<20),

		Store: env.OneOf("SIXCITIES_STORE", StoreMemory, StoreMemory, StoreMongo, StorePostgres),

		DatabaseURL: env.String("SIXCITIES_DATABASE_URL", ""),
		DBMaxConns:  env.Int32("SIXCITIES_DB_MAX_CONNS", 10),
		DBMinConns:  env.Int32("SIXCITIES_DB_MIN_CONNS", 0),

		MongoURI: env.String("SIXCITIES_MONGO_URI", ""),
		MongoDB:  env.String("SIXCITIES_MONGO_DB", "six-cities"),

		ReadinessRequireDB: env.Bool("SIXCITIES_READINESS_REQUIRE_DB", false),

		API: authapi.LoadConfigFromEnv(),
	}
	if err := env.Err(); err != nil {
		return Config{}, err
	}

	switch {
	case cfg.Store == StorePostgres && cfg.DatabaseURL == "":
		return Config{}, fmt.Errorf("%w: SIXCITIES_STORE=postgres requires SIXCITIES_DATABASE_URL", ErrMisconfigured)
	case cfg.Store == StoreMongo && cfg.MongoURI == "":
		return Config{}, fmt.Errorf("%w: SIXCITIES_STORE=mongo requires SIXCITIES_MONGO_URI", ErrMisconfigured)
	}

	var err error
	if cfg.Session, err = session.LoadConfigFromEnv(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrMisconfigured, err)
	}
	if cfg.Password, err = password.FromEnv(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrMisconfigured, err)
	}
	if cfg.Pepper, err = password.PepperFromEnv(); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrMisconfigured, password.PepperEnvKey, err)
	}

	if err := ValidateSecurityConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
