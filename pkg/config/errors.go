package config

import "errors"

var (
	// ErrInvalidWorkers is returned when the worker count is not positive
	ErrInvalidWorkers = errors.New("workers must be positive")

	// ErrInvalidQueueSize is returned when the queue size is negative
	ErrInvalidQueueSize = errors.New("queue size must not be negative")

	// ErrInvalidRatio is returned when a validation ratio is outside [0, 1]
	// or the lowest ratio exceeds the initial ratio
	ErrInvalidRatio = errors.New("invalid validation ratio")

	// ErrInvalidInterval is returned when the ratio update interval is negative
	ErrInvalidInterval = errors.New("ratio update interval must not be negative")

	// ErrInvalidLevel is returned for an unknown log level
	ErrInvalidLevel = errors.New("invalid log level")
)
