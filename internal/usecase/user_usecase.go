package usecase

import (
	"context"

	"vendorwatch/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SetRoleInput assigns a role and scope to an account.
type SetRoleInput struct {
	Role        string   `json:"role" validate:"required"`
	ScopeType   string   `json:"scope_type"`
	ScopeValues []string `json:"scope_values"`
}

// --- Output DTOs ---

// SessionOutput returns the generated tokens after a successful login or refresh.
type SessionOutput struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	User         *entity.UserProfile `json:"user"`
}

// UserUsecase defines the interface for account and roster operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.UserProfile, error)
	Login(ctx context.Context, input LoginInput) (*SessionOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*SessionOutput, error)

	// GetProfile returns the stored profile for an email.
	GetProfile(ctx context.Context, email string) (*entity.UserProfile, error)

	// Roster lists every account. Requires a role that can manage users.
	Roster(ctx context.Context, viewer *entity.UserProfile) ([]*entity.UserProfile, error)

	// SetRoleAndScope assigns role and scope. Requires a role that can manage users.
	SetRoleAndScope(ctx context.Context, viewer *entity.UserProfile, email string, input SetRoleInput) (*entity.UserProfile, error)

	// DeleteUser removes an account. Requires a role that can manage users.
	DeleteUser(ctx context.Context, viewer *entity.UserProfile, email string) error

	// WatchProfile streams the viewer's own profile so connected sessions see
	// role and scope changes live.
	WatchProfile(ctx context.Context, email string) (<-chan *entity.UserProfile, error)
}
