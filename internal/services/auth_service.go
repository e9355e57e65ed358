// Package services contains the business logic for registration, login, and
// profile retrieval.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jalvarezmx/auth-api-be/internal/auth"
	"github.com/jalvarezmx/auth-api-be/internal/models"
	"github.com/jalvarezmx/auth-api-be/internal/store"
)

var (
	// ErrInvalidInput is returned when a required field is missing.
	ErrInvalidInput = errors.New("missing required fields")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the persistence boundary the service depends on.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
}

// TokenIssuer mints signed tokens for authenticated users.
type TokenIssuer interface {
	Issue(user models.User) (string, error)
}

// AuthServiceProvider defines the interface for auth services.
type AuthServiceProvider interface {
	Register(ctx context.Context, name, email, password, role string) (models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, userID int64) (models.User, error)
}

// AuthService provides registration, login, and profile lookup.
type AuthService struct {
	store  UserStore
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register hashes the password and persists a new user. The returned record
// never carries the password hash.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (models.User, error) {
	if name == "" || email == "" || password == "" {
		return models.User{}, ErrInvalidInput
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.Create(ctx, name, email, hashed, role)
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies the credentials and returns a signed token. Unknown email
// and wrong password are indistinguishable to the caller; the unknown-email
// path still performs a bcrypt comparison so neither is cheaper.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			auth.CheckPassword(password, auth.DummyHash)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user)
}

// Profile returns the public record for an authenticated user id. A token
// whose subject no longer exists yields store.ErrNotFound.
func (s *AuthService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return s.store.FindByID(ctx, userID)
}
