package auth

import (
	"context"

	"github.com/google/uuid"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	Email       string
	AccessToken string
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// UserIDFromContext returns the authenticated user's ID, or uuid.Nil
// when the context carries no identity. Repositories use the Nil value
// to build filters that match no rows.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if user, ok := FromContext(ctx); ok && user != nil {
		return user.UserID
	}
	return uuid.Nil
}
