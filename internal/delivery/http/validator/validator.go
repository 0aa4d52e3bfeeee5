// Package validator adapts go-playground/validator to echo's Validator
// interface, translating tag failures into the shared validation error shape.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// EchoValidator implements echo.Validator on top of go-playground/validator.
type EchoValidator struct {
	validate *validator.Validate
}

// New builds a validator that reports fields by their json names.
func New() *EchoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	return &EchoValidator{validate: v}
}

// Validate checks the bound input struct. Tag failures come back as a
// ValidationError carrying one message per offending field.
func (v *EchoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to validate input")
	}

	vErr := domainerrors.NewValidationError()
	for _, fe := range fieldErrs {
		vErr.AddFieldError(fe.Field(), messageFor(fe))
	}

	return vErr
}

// messageFor renders a user-facing message for a single tag failure.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return "Invalid value."
	}
}
