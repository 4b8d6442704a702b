package identity

import (
	"time"

	"sixcities/cmd/identity/ids"
)

// NewID returns a new user id (26-char ULID).
func NewID(now time.Time) (string, error) {
	return ids.NewULID(now)
}
