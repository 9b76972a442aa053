// Package service implements SplitSmart's application services on top of
// a storage.Store and the ledger engine.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jewelmj/splitsmart/internal/apperrors"
	"github.com/jewelmj/splitsmart/internal/models"
	"github.com/jewelmj/splitsmart/internal/storage"
)

// UserService manages the user registry.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser registers a new user. Emails are normalized to lower case
// and must be unique.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, fmt.Errorf("user name is required: %w", apperrors.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required: %w", apperrors.ErrValidation)
	}

	user := &models.User{Name: name, Email: email}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// GetUserByEmail retrieves a user by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}
