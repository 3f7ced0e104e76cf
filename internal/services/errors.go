package services

import (
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Error kinds surfaced to HTTP handlers. Handlers match these with errors.Is
// and map each kind to a status code; none of them is ever swallowed.
var (
	// ErrConflict signals a duplicate unique field, such as an already
	// registered email or a repeated volunteer application.
	ErrConflict = errors.New("resource already exists")

	// ErrNotFound signals that no matching record exists.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized signals a credential mismatch (wrong password).
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrInternal signals a hashing subsystem failure, kept distinct from a
	// plain mismatch so callers can alert instead of silently rejecting.
	ErrInternal = errors.New("internal subsystem failure")

	// ErrStorage signals a persistence-layer failure after validation passed.
	ErrStorage = errors.New("storage failure")
)

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint
// violation. Duplicate checks ride on the insert itself, so a lost race
// surfaces here instead of leaving a partial record.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		return serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			serr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
