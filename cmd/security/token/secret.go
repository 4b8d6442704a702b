package token

import (
	"os"
	"strings"
)

const (
	// SecretEnvKey is the env var name for the token signing secret.
	// #nosec G101 -- not a credential; it's an environment variable name.
	SecretEnvKey = "SIXCITIES_AUTH_SECRET"
)

// SecretFromEnv returns the trimmed value of key as secret bytes.
// A blank value yields ErrSecretMissing; fewer than minBytes bytes yields ErrSecretTooShort.
func SecretFromEnv(key string, minBytes int) ([]byte, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil, ErrSecretMissing
	}
	b := []byte(raw)
	if minBytes > 0 && len(b) < minBytes {
		return nil, ErrSecretTooShort
	}
	return b, nil
}
