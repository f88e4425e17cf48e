package hash

import "errors"

var (
	// ErrMidstateUnsupported is returned when the SHA-256 implementation
	// cannot export its internal state
	ErrMidstateUnsupported = errors.New("sha256 midstate export unsupported")
)
