package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext_RoundTrip(t *testing.T) {
	userCtx := &auth.UserContext{
		UserID: uuid.New(),
		Email:  "rep@example.com",
	}

	ctx := auth.WithUserContext(context.Background(), userCtx)

	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userCtx.UserID, got.UserID)
	assert.Equal(t, userCtx.Email, got.Email)
}

func TestFromContext_Missing(t *testing.T) {
	_, ok := auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestUserIDFromContext(t *testing.T) {
	userID := uuid.New()
	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: userID})

	assert.Equal(t, userID, auth.UserIDFromContext(ctx))

	// An unauthenticated context yields the nil UUID, which repositories
	// use to build filters that match no rows.
	assert.Equal(t, uuid.Nil, auth.UserIDFromContext(context.Background()))
}

func TestMustFromContext_PanicsWhenMissing(t *testing.T) {
	assert.Panics(t, func() {
		auth.MustFromContext(context.Background())
	})
}
