package middleware

import (
	"strings"

	deliverycontext "vendorwatch/internal/delivery/context"
	"vendorwatch/internal/delivery/http/response"
	"vendorwatch/internal/domain/entity"
	"vendorwatch/internal/domain/service"
	"vendorwatch/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userUC   usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userUC usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userUC: userUC}
}

// Authenticate validates the bearer access token and loads the caller's
// stored profile onto the context. The profile is re-read per request so a
// role or scope change applies immediately, not at next login.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil || claims.Type != "access" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		viewer, err := m.userUC.GetProfile(c.Request().Context(), claims.Email)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Account no longer exists")
		}

		c.Set(string(deliverycontext.KeyViewer), viewer)

		return next(c)
	}
}

// Viewer returns the authenticated profile set by Authenticate, or nil when
// the request did not pass through it.
func Viewer(c echo.Context) *entity.UserProfile {
	viewer, _ := c.Get(string(deliverycontext.KeyViewer)).(*entity.UserProfile)

	return viewer
}
