package domain

import "errors"

// Domain errors
var (
	ErrEmptySource          = errors.New("source data is empty")
	ErrArchiveStoreDisabled = errors.New("archive store is not configured")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
