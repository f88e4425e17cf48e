package security

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned when a buffer does not have the required size
	ErrInvalidLength = errors.New("invalid length")

	// ErrNilBuffer is returned when a required buffer is nil
	ErrNilBuffer = errors.New("nil buffer")
)

// ValidateLength checks that data is exactly want bytes long.
// The returned error names the field and wraps ErrInvalidLength.
func ValidateLength(field string, data []byte, want int) error {
	if data == nil && want > 0 {
		return fmt.Errorf("%s: %w", field, ErrNilBuffer)
	}
	if len(data) != want {
		return fmt.Errorf("%s: %w: got %d bytes, want %d", field, ErrInvalidLength, len(data), want)
	}
	return nil
}
