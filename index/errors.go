package index

import "errors"

// Error values for index service operations.
var (
	ErrClosed   = errors.New("index service closed")
	ErrNoSource = errors.New("index service has no source")
)
