package session

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigFromEnv_RequiresSecret(t *testing.T) {
	t.Setenv("SIXCITIES_AUTH_SECRET", "")

	_, err := LoadConfigFromEnv()
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("SIXCITIES_AUTH_SECRET", "s3cret")
	t.Setenv("SIXCITIES_AUTH_TOKEN_TTL", "")
	t.Setenv("SIXCITIES_AUTH_TOKEN_PROFILE", "")
	t.Setenv("SIXCITIES_AUTH_ISSUER", "")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if string(cfg.Secret) != "s3cret" {
		t.Fatalf("secret not loaded")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("ttl = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.Profile != ProfileCompact || cfg.Issuer != "sixcities" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("SIXCITIES_AUTH_SECRET", "s3cret")
	t.Setenv("SIXCITIES_AUTH_TOKEN_TTL", "2h")
	t.Setenv("SIXCITIES_AUTH_TOKEN_PROFILE", "JWT")
	t.Setenv("SIXCITIES_AUTH_ISSUER", "six-cities-api")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.TokenTTL != 2*time.Hour || cfg.Profile != ProfileJWT || cfg.Issuer != "six-cities-api" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		key, val string
	}{
		{"SIXCITIES_AUTH_TOKEN_TTL", "-1h"},
		{"SIXCITIES_AUTH_TOKEN_TTL", "soon"},
		{"SIXCITIES_AUTH_TOKEN_PROFILE", "paseto"},
	}

	for _, tc := range cases {
		t.Run(tc.key+"="+tc.val, func(t *testing.T) {
			t.Setenv("SIXCITIES_AUTH_SECRET", "s3cret")
			t.Setenv(tc.key, tc.val)
			if _, err := LoadConfigFromEnv(); !errors.Is(err, ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
		})
	}
}
