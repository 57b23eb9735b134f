package api

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every request type. Initialized in init() with custom validators.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("notblank", notBlank)
}

// notBlank rejects strings made only of whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate checks msg against its struct tags. Messages without tags always pass.
func Validate(msg any) error {
	return validate.Struct(msg)
}
