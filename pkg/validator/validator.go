package validator

import (
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

// Validate checks every `validate` tag on a struct, e.g. the loaded
// configuration before the application starts.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Var validates a single prompt value against a tag, e.g. "required,email"
// or "numeric,gte=1,lte=6". An empty tag accepts anything.
func (cv *CustomValidator) Var(value string, tag string) error {
	if tag == "" {
		return nil
	}
	return cv.validator.Var(value, tag)
}

// FormatValidationErrors turns validation failures into readable messages
// keyed by field name. Var failures carry no field name and key on "".
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			var reason string
			switch e.Tag() {
			case "required":
				reason = "is required"
			case "email":
				reason = "must be a valid email address"
			case "number":
				reason = "must be a number"
			case "min":
				reason = "must be at least " + e.Param() + " characters"
			case "max":
				reason = "must be at most " + e.Param() + " characters"
			case "gte":
				reason = "must be greater than or equal to " + e.Param()
			case "lte":
				reason = "must be less than or equal to " + e.Param()
			case "datetime":
				reason = "must match the format " + e.Param()
			case "oneof":
				reason = "must be one of: " + e.Param()
			default:
				reason = "is invalid"
			}

			field := e.Field()
			if field == "" {
				errors[field] = reason
			} else {
				errors[field] = field + " " + reason
			}
		}
	}

	return errors
}
