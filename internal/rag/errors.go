package rag

import "errors"

var (
	// ErrInvalidQuery is returned when the query text is empty after trimming
	// whitespace. Surfaced to the caller as a client error, never retried.
	ErrInvalidQuery = errors.New("query must not be empty")

	// ErrMissingSelectedText is returned when selected-text mode is requested
	// without override text.
	ErrMissingSelectedText = errors.New("selected text must not be empty in selected-text mode")

	// ErrUnknownMode is returned for a mode the pipeline does not recognize.
	ErrUnknownMode = errors.New("unknown query mode")
)
