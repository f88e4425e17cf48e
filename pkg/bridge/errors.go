package bridge

import "errors"

var (
	// ErrMalformedHex is returned when a hex argument has odd length or
	// contains a non-hex character
	ErrMalformedHex = errors.New("malformed hex")

	// ErrAlreadyRegistered is returned when a function name is already
	// present in a registry
	ErrAlreadyRegistered = errors.New("function already registered")

	// ErrUnknownFunction is returned when calling a name that was never registered
	ErrUnknownFunction = errors.New("unknown function")

	// ErrNilFunction is returned when registering a nil function
	ErrNilFunction = errors.New("nil function")

	// ErrEmptyName is returned when registering under an empty name
	ErrEmptyName = errors.New("empty function name")

	// ErrNilRegistry is returned when installing into a nil registry
	ErrNilRegistry = errors.New("nil registry")
)
