// Package inputval wraps go-playground/validator for request payloads.
package inputval

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request payload struct using its `validate` tags.
func Struct(v any) error {
	return validate.Struct(v)
}

// Email reports whether s is a plausible email address.
func Email(s string) bool {
	return validate.Var(s, "required,email") == nil
}
