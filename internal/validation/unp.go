// Package validation holds domain validators and their wiring into
// go-playground/validator.
package validation

import (
	"errors"
)

// Checksum weights for the first eight UNP digits.
var unpWeights = [8]int{29, 23, 19, 17, 13, 7, 5, 3}

var (
	ErrUNPFormat   = errors.New("UNP must consist of exactly 9 digits")
	ErrUNPChecksum = errors.New("invalid UNP checksum")
)

// ValidateUNP validates a payer account number (UNP). The identifier is nine
// decimal digits; the ninth digit is the weighted sum of the first eight
// modulo 11. A remainder of 10 never yields a valid check digit, so such
// identifiers are rejected outright.
func ValidateUNP(unp string) error {
	if len(unp) != 9 {
		return ErrUNPFormat
	}

	var digits [9]int
	for i, r := range unp {
		if r < '0' || r > '9' {
			return ErrUNPFormat
		}
		digits[i] = int(r - '0')
	}

	checksum := 0
	for i, weight := range unpWeights {
		checksum += digits[i] * weight
	}

	remainder := checksum % 11
	if remainder == 10 {
		return ErrUNPChecksum
	}
	if remainder != digits[8] {
		return ErrUNPChecksum
	}
	return nil
}
