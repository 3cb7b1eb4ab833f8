// Package validation checks struct tags with go-playground/validator and reports
// failures as domain validation errors.
package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	return v
}

// Struct validates data and returns domainerrors.ErrValidationFailed with one
// "field: message" entry per failing field.
func Struct(data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fieldErr.Field(), message(fieldErr)))
	}
	sort.Strings(msgs)

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(msgs, "; "))
}

// Validator adapts Struct to echo's Validator interface.
type Validator struct{}

func (Validator) Validate(i any) error {
	return Struct(i)
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		return fmt.Sprintf("minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("maximum length is %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(err.Param(), " ", ", "))
	case "uuid":
		return "must be a valid UUID"
	case "url", "http_url":
		return "must be a valid URL"
	case "e164":
		return "must be an E.164 phone number"
	case "dive":
		return "invalid element"
	default:
		return fmt.Sprintf("failed %s check", err.Tag())
	}
}
