package gate

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sixcities/cmd/identity"
	"sixcities/cmd/security/token"
)

// Verifier checks a bearer token. token.Codec implementations satisfy it.
type Verifier interface {
	Verify(tok string, now time.Time) (token.Claims, error)
}

// Policy decides what happens to a request that does not authenticate.
type Policy int

const (
	// PolicyRequired rejects with 401.
	PolicyRequired Policy = iota
	// PolicyOptional continues without an identity.
	PolicyOptional
)

func (p Policy) String() string {
	if p == PolicyOptional {
		return "optional"
	}
	return "required"
}

// Stage is where authentication of a request stopped.
type Stage string

const (
	StageNoToken        Stage = "no_token"
	StageTokenInvalid   Stage = "token_invalid"
	StageSubjectUnknown Stage = "subject_unknown"
	StageLookupFailed   Stage = "lookup_failed"
	StageAuthenticated  Stage = "authenticated"
)

// Observer receives one call per gated request.
type Observer interface {
	ObserveGate(policy Policy, stage Stage)
}

// Gate authenticates requests against a token verifier and a user lookup.
type Gate struct {
	users    identity.UserLookup
	verifier Verifier
	log      *slog.Logger
	obs      Observer
	now      func() time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.log = l
		}
	}
}

// WithObserver sets a metrics observer.
func WithObserver(o Observer) Option {
	return func(g *Gate) { g.obs = o }
}

// WithClock overrides the time used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// New constructs a Gate.
func New(users identity.UserLookup, verifier Verifier, opts ...Option) (*Gate, error) {
	if users == nil {
		return nil, fmt.Errorf("gate: nil user lookup")
	}
	if verifier == nil {
		return nil, fmt.Errorf("gate: nil token verifier")
	}
	g := &Gate{
		users:    users,
		verifier: verifier,
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// Authenticate runs extraction, verification and lookup for r.
// The returned user is meaningful only when the stage is StageAuthenticated.
func (g *Gate) Authenticate(r *http.Request) (identity.User, Stage) {
	tok, ok := BearerToken(r.Header.Get("Authorization"))
	if !ok {
		return identity.User{}, StageNoToken
	}

	claims, err := g.verifier.Verify(tok, g.now())
	if err != nil {
		g.log.Debug("auth.gate.token_invalid",
			"reason", token.Reason(err),
			"method", r.Method,
			"path", r.URL.Path,
		)
		return identity.User{}, StageTokenInvalid
	}

	u, err := g.users.FindByID(r.Context(), claims.SubjectID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return identity.User{}, StageSubjectUnknown
		}
		g.log.Error("auth.gate.lookup_failed",
			"err", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		return identity.User{}, StageLookupFailed
	}

	return u, StageAuthenticated
}

// Middleware returns the gate stage for policy p.
func (g *Gate) Middleware(p Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, stage := g.Authenticate(r)
			if g.obs != nil {
				g.obs.ObserveGate(p, stage)
			}

			if stage == StageAuthenticated {
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
				return
			}

			if p == PolicyOptional {
				next.ServeHTTP(w, r)
				return
			}

			g.log.Info("auth.gate.reject",
				"stage", string(stage),
				"method", r.Method,
				"path", r.URL.Path,
			)
			WriteUnauthenticated(w)
		})
	}
}

// Required wraps next so that only authenticated requests reach it.
func (g *Gate) Required(next http.Handler) http.Handler {
	return g.Middleware(PolicyRequired)(next)
}

// Optional wraps next, attaching an identity when the request authenticates.
func (g *Gate) Optional(next http.Handler) http.Handler {
	return g.Middleware(PolicyOptional)(next)
}

// Required builds a required-auth stage from a user lookup and a token verifier.
func Required(users identity.UserLookup, verifier Verifier, opts ...Option) (func(http.Handler) http.Handler, error) {
	g, err := New(users, verifier, opts...)
	if err != nil {
		return nil, err
	}
	return g.Middleware(PolicyRequired), nil
}

// Optional builds an optional-auth stage from a user lookup and a token verifier.
func Optional(users identity.UserLookup, verifier Verifier, opts ...Option) (func(http.Handler) http.Handler, error) {
	g, err := New(users, verifier, opts...)
	if err != nil {
		return nil, err
	}
	return g.Middleware(PolicyOptional), nil
}

// FromSecret builds a Gate that verifies compact HMAC tokens signed with secret.
func FromSecret(users identity.UserLookup, secret []byte, opts ...Option) (*Gate, error) {
	codec, err := token.NewHMACCodec(secret)
	if err != nil {
		return nil, err
	}
	return New(users, codec, opts...)
}
