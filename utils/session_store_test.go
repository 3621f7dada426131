package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreCreateAndResolve(t *testing.T) {
	store := NewSessionStore(nil, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, ok := store.UserID(ctx, token)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)

	_, ok = store.UserID(ctx, "unknown-token")
	assert.False(t, ok)
	_, ok = store.UserID(ctx, "")
	assert.False(t, ok)
}

func TestSessionStoreDestroyIsIdempotent(t *testing.T) {
	store := NewSessionStore(nil, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 7)
	require.NoError(t, err)

	store.Destroy(ctx, token)
	_, ok := store.UserID(ctx, token)
	assert.False(t, ok)

	// Destroying again or destroying garbage must not panic.
	store.Destroy(ctx, token)
	store.Destroy(ctx, "")
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(nil, 50*time.Millisecond)
	ctx := context.Background()

	token, err := store.Create(ctx, 9)
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	_, ok := store.UserID(ctx, token)
	assert.False(t, ok)
}

func TestSessionStoreTokensAreUnique(t *testing.T) {
	store := NewSessionStore(nil, time.Hour)
	ctx := context.Background()

	t1, err := store.Create(ctx, 1)
	require.NoError(t, err)
	t2, err := store.Create(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}
