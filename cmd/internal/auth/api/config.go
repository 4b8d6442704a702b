package authapi

import (
	"os"
	"strconv"
	"strings"
)

// Config controls auth API request handling.
type Config struct {
	// TrustProxy enables X-Forwarded-For / X-Real-IP for client IPs in audit logs.
	TrustProxy   bool
	MaxBodyBytes int64
}

// DefaultConfig returns the defaults used when no env override is set.
func DefaultConfig() Config {
	return Config{MaxBodyBytes: 64 << 10}
}

// LoadConfigFromEnv loads auth API config from environment variables with safe defaults.
//
//   - SIXCITIES_AUTH_TRUST_PROXY
//   - SIXCITIES_AUTH_MAX_BODY_BYTES
func LoadConfigFromEnv() Config {
	def := DefaultConfig()
	return Config{
		TrustProxy:   envBool("SIXCITIES_AUTH_TRUST_PROXY", def.TrustProxy),
		MaxBodyBytes: envInt64("SIXCITIES_AUTH_MAX_BODY_BYTES", def.MaxBodyBytes),
	}
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

