package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/biter777/countries"
)

var (
	// ErrInvalidInput agrupa los errores de validación de campos.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indica que el recurso pedido no existe.
	ErrNotFound = errors.New("not found")
)

const (
	minPasswordLength = 8
	// bcrypt rechaza contraseñas de más de 72 bytes.
	maxPasswordBytes = 72
	maxStatValue      = 100
	unknownCountry    = "Unknown"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// validateName acepta letras ASCII, espacios y guiones. No puede quedar vacío.
func validateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("%s was empty", field)
	}
	for _, r := range name {
		if isASCIILetter(r) || r == ' ' || r == '-' {
			continue
		}
		return invalid("%s must be alpha characters only", field)
	}
	return nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func validateCountry(name string) error {
	if name == unknownCountry {
		return nil
	}
	if strings.TrimSpace(name) == "" || countries.ByName(name) == countries.Unknown {
		return invalid("the country name is not a valid country")
	}
	return nil
}

func validateStat(field string, v int) error {
	if v < 0 || v > maxStatValue {
		return invalid("%s must be between 0-%d", field, maxStatValue)
	}
	return nil
}

func validateDate(date string) error {
	if !datePattern.MatchString(date) {
		return invalid("date must use the YYYY-MM-DD format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return invalid("the password must contain at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return invalid("the password must not exceed %d bytes", maxPasswordBytes)
	}
	return nil
}
