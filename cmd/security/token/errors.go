package token

import (
	"errors"
	"fmt"
)

// ErrInvalidToken is the single outcome callers act on.
var ErrInvalidToken = errors.New("invalid token")

// Internal failure reasons. Each wraps ErrInvalidToken.
var (
	ErrMalformed        = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrBadSignature     = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	ErrMalformedPayload = fmt.Errorf("%w: malformed payload", ErrInvalidToken)
	ErrMissingClaims    = fmt.Errorf("%w: missing or mistyped claims", ErrInvalidToken)
	ErrExpired          = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// Secret loading errors.
var (
	ErrSecretMissing  = errors.New("token secret missing")
	ErrSecretTooShort = errors.New("token secret too short")
)

// Reason returns a stable log label for a verification error.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, ErrMissingClaims):
		return "missing_claims"
	case errors.Is(err, ErrExpired):
		return "expired"
	default:
		return "unknown"
	}
}
