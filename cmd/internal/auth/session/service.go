package session

import (
	"strings"
	"time"

	"sixcities/cmd/security/token"
)

// Service issues and validates login tokens.
// It is immutable after construction and safe for concurrent use.
type Service struct {
	cfg   Config
	codec token.Codec
	now   func() time.Time
}

// Issued is the result of a successful login.
type Issued struct {
	Token     string
	ExpiresAt time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source. Tests use it to pin expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a Service for cfg.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	codec, err := NewCodec(cfg)
	if err != nil {
		return nil, err
	}
	s := &Service{cfg: cfg, codec: codec, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Codec returns the token codec. The authentication gate verifies with it.
func (s *Service) Codec() token.Codec { return s.codec }

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.cfg.TokenTTL }

// IssueToken returns a token for the subject valid for the configured TTL.
func (s *Service) IssueToken(subjectID, email string) (Issued, error) {
	return s.IssueTokenTTL(subjectID, email, s.cfg.TokenTTL)
}

// IssueTokenTTL is IssueToken with an explicit lifetime. Operator tooling uses it.
func (s *Service) IssueTokenTTL(subjectID, email string, ttl time.Duration) (Issued, error) {
	if strings.TrimSpace(subjectID) == "" {
		return Issued{}, ErrEmptySubject
	}
	tok, exp, err := s.codec.Issue(subjectID, email, ttl, s.now())
	if err != nil {
		return Issued{}, err
	}
	return Issued{Token: tok, ExpiresAt: exp}, nil
}

// ValidateToken verifies tok at the current time.
func (s *Service) ValidateToken(tok string) (token.Claims, error) {
	return s.codec.Verify(tok, s.now())
}
