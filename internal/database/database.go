package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
//
// The UNIQUE constraints on users and volunteer_applications make duplicate
// rejection atomic with the insert itself, so concurrent registrations or
// applications cannot both slip past a separate existence check.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		location TEXT NOT NULL,
		urgency_level TEXT NOT NULL DEFAULT 'medium',
		photo TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		user_id INTEGER NOT NULL REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS volunteer_applications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		volunteer_id INTEGER NOT NULL REFERENCES users(id),
		request_id INTEGER NOT NULL REFERENCES requests(id),
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (volunteer_id, request_id)
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
