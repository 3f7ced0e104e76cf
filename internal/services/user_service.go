package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openrelief/relief-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, email, password, role string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetUserByID(id int64) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetUsers() ([]models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new account, hashing the password before it is stored.
// The plaintext is never persisted or logged. An empty role defaults to
// "user". Duplicate email or username is rejected by the storage UNIQUE
// constraint in the same statement that would create the row, so a lost race
// yields ErrConflict without a partial record.
func (s *UserService) Register(username, email, password, role string) (models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return models.User{}, fmt.Errorf("unrecognized role %q", role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: failed to hash password", ErrInternal)
	}

	now := time.Now().UTC()
	res, err := s.db.Exec(
		"INSERT INTO users (username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)",
		username, email, string(hashed), role, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrConflict
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return models.User{
		ID:        id,
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: now,
	}, nil
}

// Authenticate verifies credentials against the stored hash. An unknown email
// is ErrNotFound and a wrong password is ErrUnauthorized; any other bcrypt
// failure means the stored hash is unusable and is reported as ErrInternal.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, fmt.Errorf("%w: password verification: %v", ErrInternal, err)
	}

	// Don't hand the hash back to callers.
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, password_hash, role, created_at FROM users WHERE id = ?", id)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the
// password hash for credential verification.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, password_hash, role, created_at FROM users WHERE email = ?", email)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return user, nil
}

// GetUsers lists all registered accounts without their password hashes.
func (s *UserService) GetUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, username, email, role, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return users, nil
}
