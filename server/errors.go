package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonwraymond/appcatalog/index"
	"github.com/jonwraymond/appcatalog/prefs"
	"github.com/jonwraymond/appcatalog/search"
)

// Sentinel errors for consistent error handling.
var (
	ErrNoService     = errors.New("index service is required")
	ErrInvalidRemote = errors.New("invalid remote")
	ErrToolFailed    = errors.New("tool call failed")
	ErrBadRequest    = errors.New("bad request")
)

// statusFor maps an error to the HTTP status reported to clients.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, prefs.ErrUnknownKey),
		errors.Is(err, prefs.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, index.ErrClosed),
		errors.Is(err, search.ErrIndexClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
