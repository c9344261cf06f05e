// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"strings"
)

// Common sentinels across repository/service layers.
var (
	// ErrStorageUnavailable indicates the store could not be opened or its schema created.
	// Nothing can be shown without it.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageRead indicates a failed read; callers show an empty or stale list and may retry.
	ErrStorageRead = errors.New("storage read error")

	// ErrStorageWrite indicates a failed insert/update/delete; the mutation is aborted.
	ErrStorageWrite = errors.New("storage write error")

	// ErrValidation indicates a required draft field is missing.
	ErrValidation = errors.New("validation")

	// ErrNotFound indicates the requested event does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError names the required fields that were empty on submit.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "validation: " + strings.Join(e.Missing, ", ") + " required"
}

// Is makes errors.Is(err, ErrValidation) hold for any *ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
