package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the shared validator over a typed request body and
// returns a field -> message map suitable for ValidationError.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Must be a valid email address"
		case "min":
			errors[field] = fmt.Sprintf("Must be at least %s", fieldErr.Param())
		case "max":
			errors[field] = fmt.Sprintf("Must be at most %s", fieldErr.Param())
		case "oneof":
			errors[field] = fmt.Sprintf("Must be one of: %s", fieldErr.Param())
		default:
			errors[field] = fmt.Sprintf("Failed validation rule %q", fieldErr.Tag())
		}
	}
	return errors
}
