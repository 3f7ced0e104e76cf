package models

import "time"

// Urgency levels for help requests.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// HelpRequest represents a plea for assistance posted by a user.
type HelpRequest struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	UrgencyLevel string    `json:"urgencyLevel"`
	Photo        *string   `json:"photo,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UserID       int64     `json:"userId"`
}
