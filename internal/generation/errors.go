package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when a generator is constructed with
	// invalid or incomplete configuration.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
