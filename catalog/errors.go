package catalog

import "errors"

// Sentinel errors for consistent error handling.
var (
	ErrMalformedIndex    = errors.New("malformed catalog index")
	ErrSourceUnavailable = errors.New("catalog source unavailable")
	ErrInvalidItem       = errors.New("invalid catalog item")
)
