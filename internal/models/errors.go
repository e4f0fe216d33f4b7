package models

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection marks an unreachable store or a failed ping
	ErrConnection = errors.New("connection error")
	// ErrValidation marks invalid operator input or configuration
	ErrValidation = errors.New("validation error")
	// ErrIO marks an unreadable or unwritable CSV file
	ErrIO = errors.New("io error")
	// ErrCancelled marks an operator abort at a prompt
	ErrCancelled = errors.New("cancelled by user")
	// ErrDeclined marks a "no" answer to a confirmation
	ErrDeclined = errors.New("declined by user")
)

// ValidationError builds an error wrapping ErrValidation
func ValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IOError wraps a file error with the operation and path, keeping both ErrIO
// and the underlying error in the chain.
func IOError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

// PartialMatchWarning reports that fewer documents were modified than matched.
// It is a warning, never returned as an error.
type PartialMatchWarning struct {
	Matched  int64
	Modified int64
}

func (w PartialMatchWarning) String() string {
	return fmt.Sprintf("%d of %d matched document(s) were not modified (they may already have left the expected status)",
		w.Matched-w.Modified, w.Matched)
}
