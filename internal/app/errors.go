package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrNotStarted is returned when a report is requested before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrBatchTooLarge is returned when a batch exceeds the configured size.
	ErrBatchTooLarge = errors.New("batch too large")
)
