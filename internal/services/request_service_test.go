package services

import (
	"testing"

	"github.com/openrelief/relief-be/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetRequest(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	s := NewRequestService(db)

	owner, err := users.Register("alice", "a@x.com", "pw123", models.RoleUser)
	require.NoError(t, err)

	photo := "1_abc.png"
	created, err := s.Create(owner.ID, "Flooded basement", "Water rising fast", "Riverside", models.UrgencyHigh, &photo)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, owner.ID, created.UserID)

	got, err := s.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Flooded basement", got.Title)
	require.Equal(t, models.UrgencyHigh, got.UrgencyLevel)
	require.NotNil(t, got.Photo)
	require.Equal(t, photo, *got.Photo)
}

func TestCreateRequestDefaultsUrgency(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	s := NewRequestService(db)

	owner, err := users.Register("alice", "a@x.com", "pw123", models.RoleUser)
	require.NoError(t, err)

	created, err := s.Create(owner.ID, "Need supplies", "Food and water", "Hilltop", "", nil)
	require.NoError(t, err)
	require.Equal(t, models.UrgencyMedium, created.UrgencyLevel)
	require.Nil(t, created.Photo)
}

func TestGetAllRequests(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	s := NewRequestService(db)

	owner, err := users.Register("alice", "a@x.com", "pw123", models.RoleUser)
	require.NoError(t, err)

	first, err := s.Create(owner.ID, "First", "d", "loc", "", nil)
	require.NoError(t, err)
	second, err := s.Create(owner.ID, "Second", "d", "loc", "", nil)
	require.NoError(t, err)

	all, err := s.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)

	ids := []int64{all[0].ID, all[1].ID}
	require.Contains(t, ids, first.ID)
	require.Contains(t, ids, second.ID)
}

func TestGetRequestNotFound(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	_, err := s.GetByID(9999)
	require.ErrorIs(t, err, ErrNotFound)
}
