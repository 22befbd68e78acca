package crypto

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

// HashPassword hashes a password with argon2id and returns the PHC encoded
// string (algorithm, version, cost parameters and salt all embedded). No
// input length cap is enforced; argon2id has no bcrypt-style 72 byte limit.
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword reports whether password matches the encoded hash. A
// malformed hash string counts as a verification failure, never a panic.
func VerifyPassword(password, hash string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false
	}
	return match
}
