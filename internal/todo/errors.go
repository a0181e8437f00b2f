package todo

import (
	"errors"
	"fmt"
)

var (
	ErrTextLength  = errors.New("task text must be between 3 and 255 characters")
	ErrPastDate    = errors.New("date cannot be in the past")
	ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")
)

// ValidationError is returned when user input is rejected. The store is left
// untouched whenever one is returned.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UserMessage returns the text shown to the user for a validation failure.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Err.Error()
	}
	return err.Error()
}
