package ingest

import "errors"

// Sentinel kinds for ingestion errors.
var (
	// ErrOpen is returned when the workbook cannot be opened or parsed.
	ErrOpen = errors.New("open workbook")
	// ErrNoSheet is returned when the requested sheet does not exist or is empty.
	ErrNoSheet = errors.New("sheet not found")
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing column")
)
