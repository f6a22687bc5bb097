// Package appctx provides request-scoped values extraction.
package appctx

import (
	"context"
)

// SystemUser is attributed to mutations when no principal is present
// (seed scripts, unauthenticated maintenance paths).
const SystemUser = "system"

// UserContext contains authenticated user information decoded from the
// access token.
type UserContext struct {
	UserID   int64
	Username string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context, or nil.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// ActingUser returns the username to stamp on mutating operations,
// falling back to SystemUser when the request carries no principal.
func ActingUser(ctx context.Context) string {
	if u := GetUser(ctx); u != nil && u.Username != "" {
		return u.Username
	}
	return SystemUser
}
