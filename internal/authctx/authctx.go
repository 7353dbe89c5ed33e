// Package authctx carries the authenticated user's identity on the
// request context. It sits below both the HTTP layer, which stores the
// identity after token validation, and the usecase layer, which reads it
// for audit attribution.
package authctx

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	userIDKey  contextKey = "user_id"
	emailKey   contextKey = "user_email"
	roleKey    contextKey = "user_role"
	tokenIDKey contextKey = "token_id"
)

// WithIdentity stores the validated token's identity on the context.
func WithIdentity(ctx context.Context, userID uuid.UUID, email, role, tokenID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, emailKey, email)
	ctx = context.WithValue(ctx, roleKey, role)
	return context.WithValue(ctx, tokenIDKey, tokenID)
}

// UserID extracts the user ID from context
func UserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}

// Email extracts the user email from context
func Email(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// Role extracts the role from context
func Role(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// TokenID extracts the token ID from context
func TokenID(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(tokenIDKey).(string)
	return tokenID, ok
}
