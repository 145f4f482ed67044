package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/dentedu/web-gateway/internal/core/service"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// It shares the form tags registered by the sign-in service.
func NewValidator() *echoValidator {
	return &echoValidator{v: service.NewFormValidator()}
}

// Validate satisfies the echo.Validator interface. Failures come back as a
// validation *domain.APIError naming the first offending field.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		return service.ValidationError(err)
	}
	return nil
}
