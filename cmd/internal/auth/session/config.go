package session

import (
	"fmt"
	"os"
	"strings"
	"time"

	"sixcities/cmd/security/token"
)

// Profile selects the token wire format.
type Profile string

const (
	// ProfileCompact is "<base64url(json)>.<base64url(hmac)>".
	ProfileCompact Profile = "compact"
	// ProfileJWT is an HS256 JWT.
	ProfileJWT Profile = "jwt"
)

// Config defines runtime configuration for token issuance.
type Config struct {
	// Secret signs and verifies tokens. It is distinct from the password pepper.
	Secret []byte

	// TokenTTL is the lifetime of a login token.
	TokenTTL time.Duration

	Profile Profile

	// Issuer is stamped into JWT tokens. The compact profile has no issuer field.
	Issuer string
}

// DefaultConfig returns defaults without a secret; callers must supply one.
func DefaultConfig() Config {
	return Config{
		TokenTTL: token.DefaultTTL,
		Profile:  ProfileCompact,
		Issuer:   "sixcities",
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Required:
//   - SIXCITIES_AUTH_SECRET
//
// Optional:
//   - SIXCITIES_AUTH_TOKEN_TTL (Go duration, > 0)
//   - SIXCITIES_AUTH_TOKEN_PROFILE (compact|jwt)
//   - SIXCITIES_AUTH_ISSUER
//
// Every failure wraps ErrConfig.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	secret, err := token.SecretFromEnv(token.SecretEnvKey, 0)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrConfig, token.SecretEnvKey, err)
	}
	cfg.Secret = secret

	if v := strings.TrimSpace(os.Getenv("SIXCITIES_AUTH_TOKEN_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w: SIXCITIES_AUTH_TOKEN_TTL must be a positive duration", ErrConfig)
		}
		cfg.TokenTTL = d
	}

	if v := strings.TrimSpace(os.Getenv("SIXCITIES_AUTH_TOKEN_PROFILE")); v != "" {
		cfg.Profile = Profile(strings.ToLower(v))
	}

	if v := strings.TrimSpace(os.Getenv("SIXCITIES_AUTH_ISSUER")); v != "" {
		cfg.Issuer = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg invariants.
func (c Config) Validate() error {
	if len(c.Secret) == 0 {
		return fmt.Errorf("%w: secret is empty", ErrConfig)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token ttl must be positive", ErrConfig)
	}
	switch c.Profile {
	case ProfileCompact, ProfileJWT:
	default:
		return fmt.Errorf("%w: unknown token profile %q", ErrConfig, c.Profile)
	}
	return nil
}

// NewCodec builds the codec for cfg.Profile.
func NewCodec(cfg Config) (token.Codec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Profile == ProfileJWT {
		return token.NewJWTCodec(cfg.Secret, cfg.Issuer)
	}
	return token.NewHMACCodec(cfg.Secret)
}
