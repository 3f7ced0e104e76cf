package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openrelief/relief-be/internal/models"
)

// RequestServiceProvider defines the interface for help request services.
type RequestServiceProvider interface {
	Create(userID int64, title, description, location, urgency string, photo *string) (models.HelpRequest, error)
	GetAll() ([]models.HelpRequest, error)
	GetByID(id int64) (models.HelpRequest, error)
}

// RequestService provides business logic for help requests.
type RequestService struct {
	db *sql.DB
}

// NewRequestService creates a new RequestService.
func NewRequestService(db *sql.DB) *RequestService {
	return &RequestService{db: db}
}

// Create stores a new help request owned by userID. An empty urgency defaults
// to medium.
func (s *RequestService) Create(userID int64, title, description, location, urgency string, photo *string) (models.HelpRequest, error) {
	if urgency == "" {
		urgency = models.UrgencyMedium
	}

	now := time.Now().UTC()
	res, err := s.db.Exec(
		"INSERT INTO requests (title, description, location, urgency_level, photo, created_at, user_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
		title, description, location, urgency, photo, now, userID,
	)
	if err != nil {
		return models.HelpRequest{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.HelpRequest{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return models.HelpRequest{
		ID:           id,
		Title:        title,
		Description:  description,
		Location:     location,
		UrgencyLevel: urgency,
		Photo:        photo,
		CreatedAt:    now,
		UserID:       userID,
	}, nil
}

// GetAll retrieves all help requests, newest first.
func (s *RequestService) GetAll() ([]models.HelpRequest, error) {
	rows, err := s.db.Query("SELECT id, title, description, location, urgency_level, photo, created_at, user_id FROM requests ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer rows.Close()

	var requests []models.HelpRequest
	for rows.Next() {
		var req models.HelpRequest
		if err := rows.Scan(&req.ID, &req.Title, &req.Description, &req.Location, &req.UrgencyLevel, &req.Photo, &req.CreatedAt, &req.UserID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return requests, nil
}

// GetByID retrieves a single help request.
func (s *RequestService) GetByID(id int64) (models.HelpRequest, error) {
	var req models.HelpRequest
	row := s.db.QueryRow("SELECT id, title, description, location, urgency_level, photo, created_at, user_id FROM requests WHERE id = ?", id)
	if err := row.Scan(&req.ID, &req.Title, &req.Description, &req.Location, &req.UrgencyLevel, &req.Photo, &req.CreatedAt, &req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HelpRequest{}, ErrNotFound
		}
		return models.HelpRequest{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return req, nil
}
