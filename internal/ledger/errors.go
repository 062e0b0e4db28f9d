package ledger

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by errors.Is for every rejected draft or record.
var ErrValidation = errors.New("validation failed")

// ValidationError names the offending field and carries a message fit for
// showing to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
