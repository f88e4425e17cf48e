package rand

import "errors"

var (
	// ErrInvalidLength is returned when an invalid length is requested
	ErrInvalidLength = errors.New("length must be positive")
)
