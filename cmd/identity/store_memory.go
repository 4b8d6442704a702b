package identity

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is an in-process UserStore for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

// CreateUser implements UserStore.
func (s *MemoryStore) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	const op = "identity.CreateUser"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	in, emailNorm, err := in.prepare(op)
	if err != nil {
		return User{}, err
	}

	id, err := NewID(in.Now)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:             id,
		Name:           in.Name,
		Email:          in.Email,
		AvatarURL:      in.AvatarURL,
		Type:           in.Type,
		PasswordDigest: append([]byte(nil), in.PasswordDigest...),
		CreatedAt:      in.Now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[emailNorm]; taken {
		return User{}, ConflictError{Op: op, Field: "email"}
	}
	s.byID[id] = u
	s.byEmail[emailNorm] = id

	return cloneUser(u), nil
}

// FindByID implements UserLookup.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (User, error) {
	const op = "identity.FindByID"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	s.mu.RLock()
	u, ok := s.byID[strings.TrimSpace(id)]
	s.mu.RUnlock()
	if !ok {
		return User{}, notFound(op)
	}
	return cloneUser(u), nil
}

// FindByEmail implements UserLookup.
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (User, error) {
	const op = "identity.FindByEmail"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return User{}, notFound(op)
	}
	return cloneUser(s.byID[id]), nil
}

// Len returns the number of stored users.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func cloneUser(u User) User {
	u.PasswordDigest = append([]byte(nil), u.PasswordDigest...)
	return u
}
