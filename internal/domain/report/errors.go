package report

import "errors"

// Sentinel kinds for report errors.
var (
	// ErrInsufficientData is returned when the input records or the strategic
	// target table needed by a report are empty.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrUnknownKind is returned for a request with an unsupported kind.
	ErrUnknownKind = errors.New("unknown report kind")
)
