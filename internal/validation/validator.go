package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Letters, spaces and hyphens only; used for person names in contact data.
var personNamePattern = regexp.MustCompile(`^[а-яА-ЯёЁa-zA-Z\s-]+$`)

// New builds the request validator with the domain rules registered:
// `unp` (tax-identifier checksum), `intl_phone` (international phone) and
// `person_name` (letters, spaces, hyphens).
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("unp", func(fl validator.FieldLevel) bool {
		return ValidateUNP(fl.Field().String()) == nil
	}); err != nil {
		return nil, err
	}

	if err := v.RegisterValidation("intl_phone", func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String()) == nil
	}); err != nil {
		return nil, err
	}

	if err := v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || personNamePattern.MatchString(value)
	}); err != nil {
		return nil, err
	}

	return v, nil
}

// MustNew is New for wiring paths where a registration failure is a
// programming error.
func MustNew() *validator.Validate {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}
