package surfcmp

import "github.com/kailas-cloud/surfcmp/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidObject    = domain.ErrInvalidObject
	ErrDegenerateVector = domain.ErrDegenerateVector
	ErrTooManyObjects   = domain.ErrTooManyObjects
)
