package http

import (
	"devis/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate reports struct tag violations as invalid arguments.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
