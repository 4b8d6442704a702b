package password

import "errors"

// Public, stable errors for callers.
var (
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrWeakPassword     = errors.New("weak password")
	ErrPepperMissing    = errors.New("password pepper missing")
	ErrInvalidParams    = errors.New("invalid argon2id parameters")
)
