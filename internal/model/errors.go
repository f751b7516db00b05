package model

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a referenced entity that does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError describes a single domain rule violation.
type ValidationError struct {
	Feld    string
	Meldung string
}

func (e ValidationError) Error() string {
	if e.Feld == "" {
		return e.Meldung
	}
	return fmt.Sprintf("%s: %s", e.Feld, e.Meldung)
}

// Validierungsfehler builds a ValidationError for a field.
func Validierungsfehler(feld, format string, args ...any) ValidationError {
	return ValidationError{Feld: feld, Meldung: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
