package store

import (
	"errors"
	"fmt"
)

// ErrCursorNotFound is returned by ListEntries when the supplied cursor
// does not reference an existing entry. An unknown cursor is an explicit
// failure rather than an empty page, so callers can tell a bad token
// apart from an exhausted timeline.
var ErrCursorNotFound = errors.New("cursor entry not found")

// ValidationError reports a rejected create before any row is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
