package password

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Derive returns the Argon2id digest of password keyed by pepper.
// The same (password, pepper, params) triple always yields the same bytes.
func Derive(password, pepper string, p Argon2idParams) []byte {
	return argon2.IDKey(
		[]byte(password),
		[]byte(pepper),
		p.Iterations,
		p.MemoryKiB,
		p.Parallelism,
		p.KeyLength,
	)
}

// Equal reports whether a and b hold the same bytes.
// A length mismatch is the only early exit; equal-length inputs are compared in full.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Verify recomputes the digest for password and compares it with stored.
func Verify(password string, stored []byte, pepper string, p Argon2idParams) bool {
	return Equal(Derive(password, pepper, p), stored)
}

// Hasher binds Argon2id parameters to the configured pepper.
// It holds no mutable state and is safe for concurrent use.
type Hasher struct {
	params Argon2idParams
	pepper string
}

// NewHasher returns a Hasher for the given parameters and pepper.
func NewHasher(p Argon2idParams, pepper string) (*Hasher, error) {
	if pepper == "" {
		return nil, ErrPepperMissing
	}
	// argon2.IDKey panics on zero rounds or lanes.
	if p.Iterations < 1 {
		return nil, fmt.Errorf("%w: iterations must be at least 1", ErrInvalidParams)
	}
	if p.Parallelism < 1 {
		return nil, fmt.Errorf("%w: parallelism must be at least 1", ErrInvalidParams)
	}
	if p.KeyLength == 0 {
		p.KeyLength = DigestLength
	}
	return &Hasher{params: p, pepper: pepper}, nil
}

// Params returns the parameters digests are derived with.
func (h *Hasher) Params() Argon2idParams { return h.params }

// Derive returns the digest for password.
func (h *Hasher) Derive(password string) []byte {
	return Derive(password, h.pepper, h.params)
}

// Verify reports whether password matches stored.
func (h *Hasher) Verify(password string, stored []byte) bool {
	return Verify(password, stored, h.pepper, h.params)
}
