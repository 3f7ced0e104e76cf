package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openrelief/relief-be/internal/models"
)

// VolunteerServiceProvider defines the interface for volunteer application
// services.
type VolunteerServiceProvider interface {
	Apply(volunteerID, requestID int64) (models.VolunteerApplication, error)
}

// VolunteerService provides business logic for volunteer applications.
type VolunteerService struct {
	db *sql.DB
}

// NewVolunteerService creates a new VolunteerService.
func NewVolunteerService(db *sql.DB) *VolunteerService {
	return &VolunteerService{db: db}
}

// Apply records a volunteer's application to a help request. Applying to a
// missing request is ErrNotFound; applying twice is ErrConflict, enforced by
// the UNIQUE(volunteer_id, request_id) constraint so the duplicate check is
// atomic with the insert.
func (s *VolunteerService) Apply(volunteerID, requestID int64) (models.VolunteerApplication, error) {
	var exists int
	if err := s.db.QueryRow("SELECT 1 FROM requests WHERE id = ?", requestID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VolunteerApplication{}, ErrNotFound
		}
		return models.VolunteerApplication{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	now := time.Now().UTC()
	res, err := s.db.Exec(
		"INSERT INTO volunteer_applications (volunteer_id, request_id, applied_at) VALUES (?, ?, ?)",
		volunteerID, requestID, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.VolunteerApplication{}, ErrConflict
		}
		return models.VolunteerApplication{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.VolunteerApplication{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return models.VolunteerApplication{
		ID:          id,
		VolunteerID: volunteerID,
		RequestID:   requestID,
		AppliedAt:   now,
	}, nil
}
