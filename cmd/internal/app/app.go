// Package app wires the sixcities server runtime: config, logging, user store, auth routes and metrics.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sixcities/cmd/identity"
	authapi "sixcities/cmd/internal/auth/api"
	"sixcities/cmd/internal/auth/gate"
	"sixcities/cmd/internal/auth/session"
)

// App owns the HTTP server wiring and the user store lifecycle.
type App struct {
	cfg Config
	log Logger

	backend userBackend
	metrics *Metrics

	sessions *session.Service
	gate     *gate.Gate
	auth     *authapi.Handler
}

// New constructs a fully wired App from config and logger.
func New(ctx context.Context, cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}
	if err := ValidateSecurityConfig(cfg); err != nil {
		return nil, err
	}

	backend, err := newUserBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	a, err := newWithBackend(cfg, log, backend)
	if err != nil {
		_ = backend.close(context.Background())
		return nil, err
	}
	return a, nil
}

func newWithBackend(cfg Config, log Logger, backend userBackend) (*App, error) {
	creds, err := identity.NewCredentials(cfg.Password, cfg.Pepper)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewService(cfg.Session)
	if err != nil {
		return nil, err
	}

	metrics := NewMetrics()

	g, err := gate.New(backend.users, sessions.Codec(),
		gate.WithLogger(log),
		gate.WithObserver(metrics),
	)
	if err != nil {
		return nil, err
	}

	auth, err := authapi.NewHandler(log, cfg.API, backend.users, creds, sessions, g,
		authapi.WithMetrics(metrics),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		log:      log,
		backend:  backend,
		metrics:  metrics,
		sessions: sessions,
		gate:     g,
		auth:     auth,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal server error.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start",
		"addr", a.cfg.HTTPAddr,
		"store", a.backend.kind,
		"token_profile", string(a.cfg.Session.Profile),
		"token_ttl", a.sessions.TTL().String(),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		_ = a.backend.close(context.Background())
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		_ = a.backend.close(shutdownCtx)
		return err
	}

	if err := a.backend.close(shutdownCtx); err != nil {
		a.log.Error("store.close.fail", "err", err)
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
