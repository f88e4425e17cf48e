package event

import "errors"

var (
	// ErrMalformedEvent is returned when event JSON cannot be decoded or
	// lacks a required field
	ErrMalformedEvent = errors.New("malformed event")

	// ErrInvalidID is returned when the event id is not the sha256 of the
	// canonical serialization
	ErrInvalidID = errors.New("invalid event id")
)
