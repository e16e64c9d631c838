package field

import "errors"

var (
	// ErrDiscovery is returned when a record type declares its fields incorrectly.
	ErrDiscovery = errors.New("invalid field declaration")

	// ErrNotNested is returned when a nested decode is requested on a non-nested field.
	ErrNotNested = errors.New("field is not a nested value")
)
