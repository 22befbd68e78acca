package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	cipher, err := LoadOrCreateCipher(filepath.Join(t.TempDir(), "fernet.key"))
	require.NoError(t, err)
	return cipher
}

func TestCipher_Roundtrip(t *testing.T) {
	t.Parallel()

	cipher := newTestCipher(t)

	for _, plaintext := range []string{"", "hello", "k1 k2", "unicode: héllo wörld"} {
		token, err := cipher.Encrypt(plaintext)
		require.NoError(t, err)
		require.NotEqual(t, plaintext, token)

		got, err := cipher.Decrypt(token)
		require.NoError(t, err)
		require.Equal(t, plaintext, got)
	}
}

func TestCipher_TamperedTokenFails(t *testing.T) {
	t.Parallel()

	cipher := newTestCipher(t)

	token, err := cipher.Encrypt("sensitive")
	require.NoError(t, err)

	tampered := []byte(token)
	pos := len(tampered) / 2
	if tampered[pos] == 'A' {
		tampered[pos] = 'B'
	} else {
		tampered[pos] = 'A'
	}

	_, err = cipher.Decrypt(string(tampered))
	require.ErrorIs(t, err, ErrDecryption)
}

func TestCipher_MalformedTokenFails(t *testing.T) {
	t.Parallel()

	cipher := newTestCipher(t)

	for _, token := range []string{"", "garbage", "!!!not-base64!!!"} {
		_, err := cipher.Decrypt(token)
		require.ErrorIs(t, err, ErrDecryption)
	}
}

func TestLoadOrCreateCipher_PersistsKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fernet.key")

	first, err := LoadOrCreateCipher(path)
	require.NoError(t, err)

	token, err := first.Encrypt("survives restart")
	require.NoError(t, err)

	// second load must pick up the same key from disk
	second, err := LoadOrCreateCipher(path)
	require.NoError(t, err)

	got, err := second.Decrypt(token)
	require.NoError(t, err)
	require.Equal(t, "survives restart", got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCipher_WrongKeyFails(t *testing.T) {
	t.Parallel()

	token, err := newTestCipher(t).Encrypt("secret")
	require.NoError(t, err)

	_, err = newTestCipher(t).Decrypt(token)
	require.ErrorIs(t, err, ErrDecryption)
}
