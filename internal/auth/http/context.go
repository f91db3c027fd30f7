// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"context"

	"github.com/afga-dev/attendify-api/internal/authz"
)

// principalKey is a context key type for storing the authenticated principal.
type principalKey struct{}

// WithPrincipal stores an authenticated principal in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithPrincipal(ctx context.Context, principal *authz.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the authenticated principal from the context.
// Returns (principal, true) if a principal is present, or (nil, false) if none was set.
// This is typically called by handlers or subsequent middleware that need the caller's identity.
func GetPrincipal(ctx context.Context) (*authz.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*authz.Principal)
	return principal, ok
}
