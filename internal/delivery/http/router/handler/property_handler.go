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

// PropertyHandler holds dependencies for single-property handlers.
type PropertyHandler struct {
	uc     usecase.PropertyUsecase
	logger *slog.Logger
}

// NewPropertyHandler is the constructor for PropertyHandler, injected by Fx.
func NewPropertyHandler(uc usecase.PropertyUsecase, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{
		uc:     uc,
		logger: logger,
	}
}

// Get returns one property with its derived status.
func (h *PropertyHandler) Get(c echo.Context) error {
	view, err := h.uc.GetProperty(c.Request().Context(), middleware.Viewer(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// Create adds a property shell.
func (h *PropertyHandler) Create(c echo.Context) error {
	var input usecase.CreatePropertyInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid property input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.CreateProperty(c.Request().Context(), middleware.Viewer(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view)
}

// Update applies a partial property update.
func (h *PropertyHandler) Update(c echo.Context) error {
	var input usecase.UpdatePropertyInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid property input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.UpdateProperty(c.Request().Context(), middleware.Viewer(c), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// Delete removes a property.
func (h *PropertyHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteProperty(c.Request().Context(), middleware.Viewer(c), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"deleted": c.Param("id")})
}

// SetStatus declares a manual status for a property.
func (h *PropertyHandler) SetStatus(c echo.Context) error {
	var input usecase.SetStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.SetManualStatus(c.Request().Context(), middleware.Viewer(c), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// Tag renders the machine-room QR label for a property.
func (h *PropertyHandler) Tag(c echo.Context) error {
	png, err := h.uc.GeneratePropertyTag(c.Request().Context(), middleware.Viewer(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// AddContact appends a contact to a property.
func (h *PropertyHandler) AddContact(c echo.Context) error {
	var input usecase.ContactInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid contact input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	contact, err := h.uc.AddContact(c.Request().Context(), middleware.Viewer(c), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, contact)
}

// UpdateContact replaces a contact's fields.
func (h *PropertyHandler) UpdateContact(c echo.Context) error {
	var input usecase.ContactInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid contact input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	contact, err := h.uc.UpdateContact(c.Request().Context(), middleware.Viewer(c), c.Param("id"), c.Param("contactId"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contact)
}

// DeleteContact removes a contact from a property.
func (h *PropertyHandler) DeleteContact(c echo.Context) error {
	if err := h.uc.DeleteContact(c.Request().Context(), middleware.Viewer(c), c.Param("id"), c.Param("contactId")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"deleted": c.Param("contactId")})
}

// AddContract appends a non-elevator service agreement.
func (h *PropertyHandler) AddContract(c echo.Context) error {
	var input usecase.ContractInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid contract input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	contract, err := h.uc.AddContract(c.Request().Context(), middleware.Viewer(c), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, contract)
}

// UpdateContract replaces a service agreement's fields.
func (h *PropertyHandler) UpdateContract(c echo.Context) error {
	var input usecase.ContractInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid contract input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	contract, err := h.uc.UpdateContract(c.Request().Context(), middleware.Viewer(c), c.Param("id"), c.Param("contractId"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contract)
}

// DeleteContract removes a service agreement from a property.
func (h *PropertyHandler) DeleteContract(c echo.Context) error {
	if err := h.uc.DeleteContract(c.Request().Context(), middleware.Viewer(c), c.Param("id"), c.Param("contractId")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"deleted": c.Param("contractId")})
}
