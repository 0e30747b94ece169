package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the custom JWT claims carried by both token kinds. The account
// email doubles as the user document key, so it is the only identity field a
// token needs.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	Type  string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenService issues and validates the session token pair.
type TokenService interface {
	// GenerateTokens mints an access/refresh token pair for the account.
	GenerateTokens(email, role string) (accessToken string, refreshToken string, err error)

	// ValidateToken parses and verifies a token string of either kind.
	ValidateToken(tokenString string) (*Claims, error)

	// GetRefreshTokenDuration reports the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
