package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundtrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	require.True(t, VerifyPassword("secret123", hash))
	require.False(t, VerifyPassword("secret124", hash))
	require.False(t, VerifyPassword("", hash))
}

func TestHashPassword_SelfDescribing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	// PHC format: algorithm, version, cost parameters and salt all embedded
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))
	require.Contains(t, hash, "m=")
	require.Contains(t, hash, "t=")
	require.Contains(t, hash, "p=")
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret123")
	require.NoError(t, err)
	h2, err := HashPassword("secret123")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.True(t, VerifyPassword("secret123", h1))
	require.True(t, VerifyPassword("secret123", h2))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	require.False(t, VerifyPassword("secret123", "not-a-phc-string"))
	require.False(t, VerifyPassword("secret123", ""))
	require.False(t, VerifyPassword("secret123", "$argon2id$v=19$broken"))
}
