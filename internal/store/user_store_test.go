package store

import (
	"context"
	"testing"

	"github.com/jalvarezmx/auth-api-be/internal/database"
	"github.com/jalvarezmx/auth-api-be/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *UserStore {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	// The pool must not open a second connection: every in-memory
	// connection is its own empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return NewUserStore(db)
}

func countUsers(t *testing.T, s *UserStore) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n))
	return n
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u1, err := s.Create(ctx, "Ana", "ana@example.com", "hash-1", "admin")
	require.NoError(t, err)
	u2, err := s.Create(ctx, "Luis", "luis@example.com", "hash-2", "")
	require.NoError(t, err)

	require.Greater(t, u2.ID, u1.ID)
	require.Equal(t, "admin", u1.Role)
	require.Equal(t, models.DefaultRole, u2.Role, "empty role should default")
	require.False(t, u1.CreatedAt.IsZero())
}

func TestCreateDuplicateEmail(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "Ana", "ana@example.com", "hash-1", "")
	require.NoError(t, err)

	_, err = s.Create(ctx, "Impostor", "ana@example.com", "hash-2", "")
	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.Equal(t, 1, countUsers(t, s))
}

func TestFindByEmail(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Ana", "ana@example.com", "hash-1", "")
	require.NoError(t, err)

	found, err := s.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, "Ana", found.Name)
	require.Equal(t, "hash-1", found.PasswordHash, "login needs the stored hash")

	_, err = s.FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindByID(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Ana", "ana@example.com", "hash-1", "")
	require.NoError(t, err)

	found, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", found.Email)
	require.Empty(t, found.PasswordHash, "FindByID must not load the hash")

	_, err = s.FindByID(ctx, created.ID+1000)
	require.ErrorIs(t, err, ErrNotFound)
}
