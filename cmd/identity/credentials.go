package identity

import (
	"sixcities/cmd/security/password"
)

// Credentials applies the password policy and the peppered hasher.
// Registration and login go through it; nothing else touches the pepper.
type Credentials struct {
	cfg    password.Config
	hasher *password.Hasher
	// dummy is verified against when the account does not exist so that
	// unknown emails cost the same as wrong passwords.
	dummy []byte
}

// NewCredentials builds Credentials from the password config and the server pepper.
func NewCredentials(cfg password.Config, pepper string) (*Credentials, error) {
	h, err := password.NewHasher(cfg.Params, pepper)
	if err != nil {
		return nil, err
	}
	return &Credentials{
		cfg:    cfg,
		hasher: h,
		dummy:  h.Derive("sixcities-dummy-credential"),
	}, nil
}

// HashPassword validates plain against the policy and returns its digest.
func (c *Credentials) HashPassword(plain string) ([]byte, error) {
	const op = "identity.HashPassword"

	if err := c.cfg.Validate(plain); err != nil {
		return nil, OpError{Op: op, Kind: ErrInvalidInput, Msg: err.Error()}
	}
	return c.hasher.Derive(plain), nil
}

// CheckPassword reports whether plain matches digest.
func (c *Credentials) CheckPassword(plain string, digest []byte) bool {
	return c.hasher.Verify(plain, digest)
}

// CheckMissing spends the same work as CheckPassword and always reports false.
func (c *Credentials) CheckMissing(plain string) bool {
	_ = c.hasher.Verify(plain, c.dummy)
	return false
}
