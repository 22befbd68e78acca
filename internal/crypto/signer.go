package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// Signer signs encrypted note content with a process-wide Ed25519 keypair.
// Only the 32 byte seed is persisted; the public key is derived in memory at
// every start. Read-only after construction, safe for concurrent use.
type Signer struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// LoadOrCreateSigner loads the raw Ed25519 seed from path, generating and
// persisting one on first run. If the seed file is lost, every existing note
// fails signature verification and becomes unreadable, not merely unverified.
func LoadOrCreateSigner(path string) (*Signer, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		if len(raw) != ed25519.SeedSize {
			return nil, fmt.Errorf("signing key %s: expected %d byte seed, got %d", path, ed25519.SeedSize, len(raw))
		}
		priv := ed25519.NewKeyFromSeed(raw)
		return &Signer{priv: priv, pub: priv.Public().(ed25519.PublicKey)}, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read signing key %s: %w", path, err)
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}
	if err := os.WriteFile(path, priv.Seed(), 0o600); err != nil {
		return nil, fmt.Errorf("write signing key %s: %w", path, err)
	}
	return &Signer{priv: priv, pub: pub}, nil
}

// Sign returns the base64 encoded Ed25519 signature over the exact bytes of
// message.
func (s *Signer) Sign(message string) string {
	sig := ed25519.Sign(s.priv, []byte(message))
	return base64.StdEncoding.EncodeToString(sig)
}

// Verify reports whether signature is a valid base64 encoded signature over
// message. Malformed input is a plain false, never an error.
func (s *Signer) Verify(message, signature string) bool {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(s.pub, []byte(message), sig)
}
