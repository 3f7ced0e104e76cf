package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/openrelief/relief-be/internal/database"
	"github.com/openrelief/relief-be/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := NewUserService(newTestDB(t))

	user, err := s.Register("alice", "a@x.com", "pw123", models.RoleUser)
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, models.RoleUser, user.Role)
	require.Empty(t, user.PasswordHash)

	got, err := s.Authenticate("a@x.com", "pw123")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Empty(t, got.PasswordHash)
}

func TestRegisterDefaultsRole(t *testing.T) {
	s := NewUserService(newTestDB(t))

	user, err := s.Register("bob", "b@x.com", "pw123", "")
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, user.Role)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	s := NewUserService(newTestDB(t))

	_, err := s.Register("eve", "e@x.com", "pw123", "admin")
	require.Error(t, err)

	_, err = s.GetUserByEmail("e@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := NewUserService(newTestDB(t))

	_, err := s.Register("alice", "a@x.com", "pw123", models.RoleUser)
	require.NoError(t, err)

	_, err = s.Register("alice2", "a@x.com", "other", models.RoleVolunteer)
	require.ErrorIs(t, err, ErrConflict)

	// The existing record is untouched.
	existing, err := s.GetUserByEmail("a@x.com")
	require.NoError(t, err)
	require.Equal(t, "alice", existing.Username)
	require.Equal(t, models.RoleUser, existing.Role)

	_, err = s.Authenticate("a@x.com", "pw123")
	require.NoError(t, err)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := NewUserService(newTestDB(t))

	_, err := s.Register("alice", "a@x.com", "pw123", models.RoleUser)
	require.NoError(t, err)

	_, err = s.Register("alice", "other@x.com", "pw123", models.RoleUser)
	require.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s := NewUserService(newTestDB(t))

	_, err := s.Register("alice", "a@x.com", "pw123", models.RoleUser)
	require.NoError(t, err)

	_, err = s.Authenticate("a@x.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	s := NewUserService(newTestDB(t))

	_, err := s.Authenticate("nobody@x.com", "pw123")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticateCorruptHash(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	_, err := s.Register("alice", "a@x.com", "pw123", models.RoleUser)
	require.NoError(t, err)

	_, err = db.Exec("UPDATE users SET password_hash = 'not-a-bcrypt-hash' WHERE email = ?", "a@x.com")
	require.NoError(t, err)

	// A broken stored hash is an internal failure, not a plain mismatch.
	_, err = s.Authenticate("a@x.com", "pw123")
	require.ErrorIs(t, err, ErrInternal)
}

func TestGetUsersOmitsPasswordHash(t *testing.T) {
	s := NewUserService(newTestDB(t))

	_, err := s.Register("alice", "a@x.com", "pw123", models.RoleUser)
	require.NoError(t, err)
	_, err = s.Register("val", "v@x.com", "pw456", models.RoleVolunteer)
	require.NoError(t, err)

	users, err := s.GetUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.Empty(t, u.PasswordHash)
	}
}
