// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "dentist/internal/domain/errors"
	"dentist/internal/errors"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New builds a validator that reports fields by their json names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: v}
}

// Validate returns ErrValidation listing every failing field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate")
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fe.Field()+": "+message(fe))
	}

	return ValidationError("body", messages...)
}

// ValidationError builds the VALIDATION_ERROR carried back to the client.
func ValidationError(dataVar string, messages ...string) *domainerrors.AppError {
	return domainerrors.ErrValidation.WithRaw(map[string]any{
		"errors":  messages,
		"dataVar": dataVar,
	})
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must match format " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "min", "max":
		return "must be " + fe.Tag() + " " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}
