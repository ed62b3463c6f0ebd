package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidObject signals a malformed geometric object record.
	ErrInvalidObject = errors.New("invalid object")
	// ErrDegenerateVector signals a pair with no informative coefficient position.
	ErrDegenerateVector = errors.New("no informative coefficients to compare")
	// ErrTooManyObjects signals a request above the configured object limit.
	ErrTooManyObjects = errors.New("too many objects")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// ObjectError wraps ErrInvalidObject with the offending object id.
type ObjectError struct {
	ID     int64
	Reason string
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("%s %d: %s", ErrInvalidObject.Error(), e.ID, e.Reason)
}

func (e *ObjectError) Unwrap() error { return ErrInvalidObject }

// NewObjectError creates an invalid object error for id.
func NewObjectError(id int64, reason string) error {
	return &ObjectError{ID: id, Reason: reason}
}
