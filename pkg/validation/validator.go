// Package validation wraps go-playground/validator and renders its failures
// as per-field message lists keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

const (
	MsgRequired = "This field is required."
	MsgEmail    = "Enter a valid email address."
	MsgURL      = "Enter a valid URL."
	MsgInvalid  = "Invalid value."
)

// Validator validates request structs.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their json tag name.
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

// Struct validates s. It returns nil or a validation AppError carrying the
// field messages.
func (v *Validator) Struct(s interface{}) error {
	fields := v.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return apperrors.NewFieldValidationError(fields)
}

// Fields validates s and returns the field messages, empty when s is valid.
func (v *Validator) Fields(s interface{}) apperrors.FieldErrors {
	fields := apperrors.FieldErrors{}

	err := v.validate.Struct(s)
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields.Add("non_field_errors", err.Error())
		return fields
	}

	for _, fe := range verrs {
		fields.Add(fe.Field(), message(fe))
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgEmail
	case "url", "http_url":
		return MsgURL
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("\"%v\" is not a valid choice.", fe.Value())
	default:
		return MsgInvalid
	}
}
