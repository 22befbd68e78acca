package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"encrypted-notes/internal/domain"
	"encrypted-notes/internal/repository"
)

const createNotesTable = `
CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	encrypted_title TEXT NOT NULL,
	encrypted_content TEXT NOT NULL,
	encrypted_keywords TEXT NOT NULL,
	encrypted_drawing TEXT,
	signature TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_user_id ON notes(user_id);
`

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createNotesTable); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	return nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (int64, error) {
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO notes (user_id, encrypted_title, encrypted_content, encrypted_keywords, encrypted_drawing, signature, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		note.UserID,
		note.EncryptedTitle,
		note.EncryptedContent,
		note.EncryptedKeywords,
		nullString(note.EncryptedDrawing),
		note.Signature,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("note last insert id: %w", err)
	}
	note.ID = id
	return id, nil
}

func (r *NoteRepository) GetByIDForOwner(ctx context.Context, id, ownerID int64) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, encrypted_title, encrypted_content, encrypted_keywords, encrypted_drawing, signature, created_at, updated_at
FROM notes
WHERE id = ? AND user_id = ?`,
		id,
		ownerID,
	)
	return scanNote(row)
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, encrypted_title, encrypted_content, encrypted_keywords, encrypted_drawing, signature, created_at, updated_at
FROM notes
WHERE user_id = ?
ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}

	return notes, rows.Err()
}

func scanNote(scanner interface {
	Scan(dest ...any) error
}) (*domain.Note, error) {
	var (
		note    domain.Note
		drawing sql.NullString
	)

	if err := scanner.Scan(
		&note.ID,
		&note.UserID,
		&note.EncryptedTitle,
		&note.EncryptedContent,
		&note.EncryptedKeywords,
		&drawing,
		&note.Signature,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoteNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}

	if drawing.Valid {
		v := drawing.String
		note.EncryptedDrawing = &v
	}

	return &note, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
