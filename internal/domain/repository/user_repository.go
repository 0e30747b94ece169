package repository

import (
	"context"
	"errors"

	"vendorwatch/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user-profile persistence.
// Profiles are keyed by lowercased email address.
type UserRepository interface {
	// FindByEmail retrieves a single profile by email address.
	FindByEmail(ctx context.Context, email string) (*entity.UserProfile, error)

	// FindAll retrieves the full user roster.
	FindAll(ctx context.Context) ([]*entity.UserProfile, error)

	// Upsert creates the profile or replaces it when it already exists.
	Upsert(ctx context.Context, profile *entity.UserProfile) error

	// UpdateFields applies a partial update to the stored profile.
	UpdateFields(ctx context.Context, email string, fields map[string]any) error

	// Delete removes the profile.
	Delete(ctx context.Context, email string) error
}
