package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("pw1")
	require.NoError(t, err)
	require.NotEqual(t, "pw1", hash)

	assert.True(t, CheckPassword(hash, "pw1"))
	assert.False(t, CheckPassword(hash, "pw2"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(h1, "same-password"))
	assert.True(t, CheckPassword(h2, "same-password"))
}

func TestCheckPasswordCorruptHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "pw1"))
	assert.False(t, CheckPassword("", "pw1"))
}
