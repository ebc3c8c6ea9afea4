package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	for _, p := range []string{"abcd", "Admin123!", "пароль-длинный", "x y z w"} {
		hash, err := HashPassword(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash)
		assert.True(t, CheckPassword(p, hash), "password %q", p)
		assert.False(t, CheckPassword(p+"1", hash))
		assert.False(t, CheckPassword("", hash))
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, CheckPassword("same-password", a))
	assert.True(t, CheckPassword("same-password", b))
}

func TestCheckPasswordRejectsGarbageHash(t *testing.T) {
	assert.False(t, CheckPassword("abcd", "not-a-bcrypt-hash"))
}
