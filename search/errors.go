package search

import "errors"

// ErrIndexClosed is returned by searches against a closed Index.
var ErrIndexClosed = errors.New("search index closed")
