package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"encrypted-notes/internal/repository"
	"encrypted-notes/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	noteRepo := sqlite.NewNoteRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, noteRepo.Init(ctx))

	return db
}

func newTestUserService(t *testing.T) (UserService, repository.UserRepository) {
	t.Helper()
	repo := sqlite.NewUserRepository(newTestDB(t))
	return NewUserService(repo), repo
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.False(t, user.CreatedAt.IsZero())
	// plaintext password and hash never leave the service
	require.Empty(t, user.PasswordHash)

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", stored.PasswordHash)
	require.Contains(t, stored.PasswordHash, "$argon2id$")
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other-password")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserService_RegisterValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "secret123")
	require.Error(t, err)

	_, err = svc.Register(ctx, "alice", "")
	require.Error(t, err)
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_UsernameCaseSensitive(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	// "Alice" is a different account, not a credential for "alice"
	_, err = svc.Authenticate(ctx, "Alice", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, "Alice", "secret123")
	require.NoError(t, err)
}
