package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"vendorwatch/internal/delivery/http/middleware"
	"vendorwatch/internal/delivery/http/response"
	"vendorwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for roster and session handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetProfile returns the authenticated caller's own profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	return response.Success(c, http.StatusOK, middleware.Viewer(c))
}

// Roster lists every account for the admin console.
func (h *UserHandler) Roster(c echo.Context) error {
	users, err := h.uc.Roster(c.Request().Context(), middleware.Viewer(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users)
}

// SetRole assigns a role and scope to the account in the path.
func (h *UserHandler) SetRole(c echo.Context) error {
	var input usecase.SetRoleInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid role input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.SetRoleAndScope(c.Request().Context(), middleware.Viewer(c), c.Param("email"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// DeleteUser removes the account in the path.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.uc.DeleteUser(c.Request().Context(), middleware.Viewer(c), c.Param("email")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"deleted": c.Param("email")})
}

// WatchSession streams the caller's own profile as server-sent events, so an
// open dashboard picks up role and scope changes without re-login.
func (h *UserHandler) WatchSession(c echo.Context) error {
	viewer := middleware.Viewer(c)
	ctx := c.Request().Context()

	updates, err := h.uc.WatchProfile(ctx, viewer.Key())
	if err != nil {
		return errors.WithStack(err)
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case profile, ok := <-updates:
			if !ok {
				return nil
			}

			if profile == nil {
				// The account was deleted while the session was open.
				fmt.Fprint(w, "event: deleted\ndata: {}\n\n")
				w.Flush()

				return nil
			}

			payload, err := json.Marshal(profile)
			if err != nil {
				h.logger.Warn("failed to encode profile event", slog.Any("error", err))

				continue
			}
			fmt.Fprintf(w, "event: profile\ndata: %s\n\n", payload)
			w.Flush()
		}
	}
}
