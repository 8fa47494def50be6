package form

import "errors"

var (
	// ErrUnknownField is returned for a path outside the fiche field set.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalidValue is returned when a value cannot be stored at a path.
	ErrInvalidValue = errors.New("form: invalid value")
)
