package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestValidatePassword_MinimumLength(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long enough"))
}
