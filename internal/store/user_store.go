// Package store implements the credential store on top of database/sql.
// Email uniqueness is enforced by the schema, so concurrent registrations
// racing on the same address resolve inside SQLite: one insert wins, the
// other surfaces ErrDuplicateEmail.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jalvarezmx/auth-api-be/internal/models"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
)

// UserStore persists and looks up user records.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user and returns the persisted record with its
// assigned id. An empty role defaults to models.DefaultRole.
func (s *UserStore) Create(ctx context.Context, name, email, passwordHash, role string) (models.User, error) {
	if role == "" {
		role = models.DefaultRole
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users(name, email, password_hash, role, created_at) VALUES(?, ?, ?, ?, ?)",
		user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		var serr *sqlite.Error
		if errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByEmail retrieves a user by email, including the password hash so the
// caller can verify credentials.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// FindByID retrieves a user by id. The password hash is not selected.
func (s *UserStore) FindByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, role, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
