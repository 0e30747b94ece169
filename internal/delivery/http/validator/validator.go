// Package validator plugs go-playground struct validation into echo.
package validator

import (
	domainerrors "vendorwatch/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator over struct tags.
type Validator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks a bound request struct against its validate tags.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
