package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")
)
