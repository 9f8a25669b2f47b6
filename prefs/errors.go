package prefs

import "errors"

// Sentinel errors for preference updates.
var (
	ErrUnknownKey   = errors.New("unknown preference")
	ErrInvalidValue = errors.New("invalid preference value")
)
