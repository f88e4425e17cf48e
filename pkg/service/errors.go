package service

import "errors"

var (
	// ErrNotStarted is returned when submitting to a service that was never started
	ErrNotStarted = errors.New("service not started")

	// ErrStopped is returned when submitting to a stopped service, and as
	// the result of requests still queued when it stopped
	ErrStopped = errors.New("service stopped")

	// ErrAlreadyStarted is returned when starting a service twice
	ErrAlreadyStarted = errors.New("service already started")

	// ErrNilEvent is returned when processing a nil event
	ErrNilEvent = errors.New("nil event")
)
