package repository

import (
	"context"
	"errors"

	"encrypted-notes/internal/domain"
)

// ErrNoteNotFound is returned when no note row matches (id, owner). A note
// owned by a different user is indistinguishable from a missing one.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository exposes persistence operations for Note rows. Every lookup
// takes the owner id as a mandatory predicate: there is no way to fetch a
// note without naming the caller that must own it.
type NoteRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, note *domain.Note) (int64, error)
	GetByIDForOwner(ctx context.Context, id, ownerID int64) (*domain.Note, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Note, error)
}
