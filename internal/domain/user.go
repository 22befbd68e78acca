package domain

import "time"

// User represents a registered account. The password hash is a self-describing
// argon2id PHC string; plaintext passwords never leave the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
