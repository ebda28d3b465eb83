// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, session token
// issuing and parsing, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-item-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey is the key under which the auth middleware stores the
// resolved principal (the live account making the request).
var PrincipalCtxKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying principal.
func WithPrincipal(ctx context.Context, principal models.User) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, principal)
}

// GetPrincipalFromContext retrieves the principal stored by WithPrincipal.
//
// ok is false when no principal is present or the value has an unexpected
// type; callers behind the auth middleware can treat that as a programming
// error.
func GetPrincipalFromContext(ctx context.Context) (models.User, bool) {
	principal, ok := ctx.Value(PrincipalCtxKey).(models.User)
	return principal, ok
}
