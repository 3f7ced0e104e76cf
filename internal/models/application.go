package models

import "time"

// VolunteerApplication links a volunteer to a help request they offered to
// work on. A volunteer may apply to a given request at most once.
type VolunteerApplication struct {
	ID          int64     `json:"id"`
	VolunteerID int64     `json:"volunteerId"`
	RequestID   int64     `json:"requestId"`
	AppliedAt   time.Time `json:"appliedAt"`
}
