package dirsum

import "errors"

// Error kinds returned by tree operations. Callers should test with errors.Is.
var (
	// ErrPathUnreadable is returned when the root, a directory or a file
	// under it cannot be opened, listed or read.
	ErrPathUnreadable = errors.New("path unreadable")

	// ErrUnsupportedAlgorithm is returned for an unknown digest name.
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

	// ErrInterrupted is returned when a shutdown signal arrives mid-operation.
	ErrInterrupted = errors.New("operation interrupted by shutdown")
)
