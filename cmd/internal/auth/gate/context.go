package gate

import (
	"context"

	"sixcities/cmd/identity"
)

type userKey struct{}

// WithUser returns ctx carrying u as the authenticated identity.
func WithUser(ctx context.Context, u identity.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the authenticated identity, if any.
func UserFromContext(ctx context.Context) (identity.User, bool) {
	u, ok := ctx.Value(userKey{}).(identity.User)
	return u, ok
}
