package crypto

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fernet/fernet-go"
)

// ErrDecryption is returned when a Fernet token fails authentication or is
// malformed. The plaintext is never partially recovered.
var ErrDecryption = errors.New("decryption failed")

// Cipher performs authenticated symmetric encryption of note fields with a
// single process-wide Fernet key. The key is read-only after construction, so
// a Cipher is safe for concurrent use.
type Cipher struct {
	key *fernet.Key
}

// LoadOrCreateCipher loads the base64 encoded Fernet key from path, generating
// and persisting a fresh key on first run. Losing the key file makes every
// token encrypted under it permanently unrecoverable; there is no rotation or
// re-encryption path.
func LoadOrCreateCipher(path string) (*Cipher, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		key, derr := fernet.DecodeKey(strings.TrimSpace(string(raw)))
		if derr != nil {
			return nil, fmt.Errorf("decode fernet key %s: %w", path, derr)
		}
		return &Cipher{key: key}, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read fernet key %s: %w", path, err)
	}

	key := new(fernet.Key)
	if err := key.Generate(); err != nil {
		return nil, fmt.Errorf("generate fernet key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(key.Encode()), 0o600); err != nil {
		return nil, fmt.Errorf("write fernet key %s: %w", path, err)
	}
	return &Cipher{key: key}, nil
}

// Encrypt returns a URL-safe Fernet token embedding an issue timestamp and an
// HMAC authentication tag. Each call draws a fresh IV, so equal plaintexts
// produce unrelated tokens.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}
	return string(tok), nil
}

// Decrypt authenticates and decrypts a token. A TTL of zero is passed to the
// verifier: tokens never expire as long as the key matches.
func (c *Cipher) Decrypt(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{c.key})
	if msg == nil {
		return "", ErrDecryption
	}
	return string(msg), nil
}
