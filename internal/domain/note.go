package domain

import "time"

// Note is the stored form of a note: all user-provided fields are Fernet
// tokens and the signature covers the encrypted content bytes exactly.
// Drawing is optional and nil when the note carries no drawing payload.
type Note struct {
	ID                int64
	UserID            int64
	EncryptedTitle    string
	EncryptedContent  string
	EncryptedKeywords string
	EncryptedDrawing  *string
	Signature         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PlaintextNote is the decrypted view returned by read-by-id only. List and
// search responses keep fields encrypted.
type PlaintextNote struct {
	ID        int64
	Title     string
	Content   string
	Keywords  string
	Drawing   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
