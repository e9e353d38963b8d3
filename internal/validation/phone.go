package validation

import (
	"errors"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is assumed for numbers given without a country prefix.
const DefaultPhoneRegion = "BY"

var ErrPhone = errors.New("invalid phone number, expected format: +375291234567")

// ValidatePhone validates an international phone number, accepting local
// formats of the default region. Empty input is valid: phone fields are
// optional everywhere.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(phone, DefaultPhoneRegion)
	if err != nil {
		return ErrPhone
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return ErrPhone
	}
	return nil
}
