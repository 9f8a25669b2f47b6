package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"
)

// Source fetches the full item collection.
type Source interface {
	Fetch(ctx context.Context) ([]Item, error)
}

// Decode reads a JSON array of items from r.
func Decode(r io.Reader) ([]Item, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedIndex, err)
	}
	return items, nil
}

// SourceFor returns a Source for location. http and https URLs are fetched
// with an HTTPSource; anything else is treated as a file path.
func SourceFor(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrSourceUnavailable)
	}
	parsed, err := url.Parse(location)
	if err == nil {
		switch parsed.Scheme {
		case "http", "https":
			return &HTTPSource{URL: location}, nil
		case "file":
			return &FileSource{Path: parsed.Path}, nil
		}
	}
	return &FileSource{Path: location}, nil
}

// FileSource reads items from a local JSON file.
type FileSource struct {
	Path string
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// DefaultFetchTimeout bounds an HTTPSource fetch when no Client is set.
const DefaultFetchTimeout = 30 * time.Second

var defaultClient = &http.Client{Timeout: DefaultFetchTimeout}

// HTTPSource fetches items from a URL. A nil Client uses a client with
// DefaultFetchTimeout.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client().Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrSourceUnavailable, s.URL, resp.Status)
	}
	return Decode(resp.Body)
}

func (s *HTTPSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return defaultClient
}

// StaticSource serves a fixed collection. Fetch returns a copy.
type StaticSource []Item

// Fetch implements Source.
func (s StaticSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone([]Item(s)), nil
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Item, error)

// Fetch implements Source.
func (f SourceFunc) Fetch(ctx context.Context) ([]Item, error) {
	return f(ctx)
}
