package handler

import (
	"log/slog"
	"net/http"

	"vendorwatch/internal/delivery/http/middleware"
	"vendorwatch/internal/delivery/http/response"
	"vendorwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WizardHandler drives the contract verification flow over HTTP.
type WizardHandler struct {
	uc     usecase.WizardUsecase
	logger *slog.Logger
}

// NewWizardHandler is the constructor for WizardHandler, injected by Fx.
func NewWizardHandler(uc usecase.WizardUsecase, logger *slog.Logger) *WizardHandler {
	return &WizardHandler{
		uc:     uc,
		logger: logger,
	}
}

// Steps lists the wizard's step definitions in order.
func (h *WizardHandler) Steps(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.uc.Steps())
}

type checkStepRequest struct {
	Step  int                  `json:"step" validate:"gte=0"`
	State *usecase.WizardState `json:"state" validate:"required"`
}

// CheckStep probes whether the collected state satisfies one step.
func (h *WizardHandler) CheckStep(c echo.Context) error {
	var input checkStepRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid step check input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.uc.CheckStep(input.Step, input.State))
}

// Complete finishes the wizard for a property.
func (h *WizardHandler) Complete(c echo.Context) error {
	var state usecase.WizardState
	if err := c.Bind(&state); err != nil {
		return response.BindingError(c, "Invalid wizard state")
	}
	if err := c.Validate(&state); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Complete(c.Request().Context(), middleware.Viewer(c), c.Param("id"), &state)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}
