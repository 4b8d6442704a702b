package identity

//go:generate mockgen -destination=mocks/mock_user_store.go -package=mocks sixcities/cmd/identity UserStore

import (
	"context"
	"strings"
	"time"
)

// UserType distinguishes regular hosts from pro hosts.
type UserType string

const (
	UserTypeRegular UserType = "regular"
	UserTypePro     UserType = "pro"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	return t == UserTypeRegular || t == UserTypePro
}

// User is the sixcities account record.
type User struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
	Type      UserType

	// PasswordDigest is the Argon2id output. It never leaves the server.
	PasswordDigest []byte

	CreatedAt time.Time
}

// CreateUserInput describes a registration. PasswordDigest is already derived.
type CreateUserInput struct {
	Name           string
	Email          string
	AvatarURL      string
	Type           UserType
	PasswordDigest []byte
	Now            time.Time
}

// UserLookup resolves users by id or email.
// Both methods return an error matching ErrNotFound when no user exists.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

// UserStore is the user persistence boundary.
type UserStore interface {
	UserLookup
	// CreateUser returns a ConflictError with Field "email" when the normalized email is taken.
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)
}

// prepare validates and normalizes in. It returns the normalized email alongside.
func (in CreateUserInput) prepare(op string) (CreateUserInput, string, error) {
	in.Name = NormalizeName(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)

	if in.Name == "" {
		return in, "", invalid(op, "name is required")
	}
	emailNorm := NormalizeEmail(in.Email)
	if emailNorm == "" {
		return in, "", invalid(op, "email is required")
	}
	if len(in.PasswordDigest) == 0 {
		return in, "", invalid(op, "password digest is required")
	}
	if in.Type == "" {
		in.Type = UserTypeRegular
	}
	if !in.Type.Valid() {
		return in, "", invalid(op, "unknown user type")
	}
	if in.Now.IsZero() {
		in.Now = time.Now().UTC()
	}
	return in, emailNorm, nil
}
