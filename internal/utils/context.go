// Package utils provides general-purpose helpers shared by the transport and
// service layers: type-safe context keys, JSON response writing, the resty
// HTTP client wrapper and the session token generator.
package utils

import (
	"context"
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

// SessionTokenCtxKey stores the session token presented by the request
// (cookie value), whether or not it resolves to a live session.
var SessionTokenCtxKey = contextKey("sessionToken")

// GetSessionTokenFromContext retrieves the session token stored under
// [SessionTokenCtxKey]. ok is false when the value is missing, has an
// unexpected type or is empty.
func GetSessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenCtxKey).(string)
	return token, ok && token != ""
}

// WithSessionToken returns a copy of ctx carrying token.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, SessionTokenCtxKey, token)
}
