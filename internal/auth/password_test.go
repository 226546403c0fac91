package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathertunes/weathertunes/internal/auth"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, auth.CheckPassword("s3cret-pass", hash))
	assert.False(t, auth.CheckPassword("wrong-pass", hash))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := auth.HashPassword("same-password")
	require.NoError(t, err)
	second, err := auth.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, auth.CheckPassword("anything", "not-a-bcrypt-hash"))
}
