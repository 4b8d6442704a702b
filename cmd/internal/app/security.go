package app

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
)

// ErrMisconfigured wraps every startup configuration failure.
var ErrMisconfigured = errors.New("misconfigured")

// ValidateSecurityConfig enforces the auth secret policy at startup.
//
// The token secret and the password pepper must both be present and must differ:
// a leaked token secret must not also be enough to precompute password digests.
func ValidateSecurityConfig(cfg Config) error {
	if len(cfg.Session.Secret) == 0 {
		return fmt.Errorf("%w: token secret is empty", ErrMisconfigured)
	}
	if strings.TrimSpace(cfg.Pepper) == "" {
		return fmt.Errorf("%w: password pepper is empty", ErrMisconfigured)
	}
	// The secret loader trims and the pepper is kept verbatim, so compare trimmed forms.
	secret := bytes.TrimSpace(cfg.Session.Secret)
	pepper := []byte(strings.TrimSpace(cfg.Pepper))
	if subtle.ConstantTimeCompare(secret, pepper) == 1 {
		return fmt.Errorf("%w: token secret and password pepper must differ", ErrMisconfigured)
	}
	if err := cfg.Session.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrMisconfigured, err)
	}
	return nil
}
