package app

import (
	"context"
)

// Run loads config from the environment, builds the App and serves until ctx is done.
// It returns an error instead of calling os.Exit so deferred cleanup still runs.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	log := NewLogger(cfg.LogLevel, cfg.LogFormat)

	a, err := New(ctx, cfg, log)
	if err != nil {
		log.Error("app.init.fail", "err", err)
		return err
	}
	return a.Run(ctx)
}
