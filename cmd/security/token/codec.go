package token

import "time"

// DefaultTTL is the lifetime of tokens issued at login.
const DefaultTTL = 24 * time.Hour

// Claims is the identity a verified token vouches for.
// Email is informational; the subject id is authoritative.
type Claims struct {
	SubjectID string
	Email     string
}

// Codec issues and verifies bearer tokens.
// Implementations are immutable after construction and safe for concurrent use.
type Codec interface {
	// Issue returns a token for the subject valid until now+ttl, and that expiry.
	Issue(subjectID, email string, ttl time.Duration, now time.Time) (string, time.Time, error)
	// Verify returns the claims of a token that is authentic and unexpired at now.
	Verify(token string, now time.Time) (Claims, error)
}
