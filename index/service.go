package index

import (
	"context"
	"io"
	"iter"
	"log"
	"strings"
	"sync"

	"github.com/jonwraymond/appcatalog/catalog"
	"github.com/jonwraymond/appcatalog/search"
)

// Options configures a Service.
type Options struct {
	// Source provides the item collection. Required for Load.
	Source catalog.Source

	// Search configures field boosts and fuzziness of the index.
	Search search.Config

	// FetchOnQuery starts a background load on the first non-empty query
	// that finds the collection missing.
	FetchOnQuery bool

	// Logger receives load and build diagnostics. If nil, logs are discarded.
	Logger *log.Logger
}

// Hit is one ranked query result.
type Hit struct {
	Item  catalog.Item
	Score float64

	// Rank is the zero-based position of the hit in the result order.
	Rank int
}

// Stats is a snapshot of the service state.
type Stats struct {
	Loaded      bool   `json:"loaded"`
	Loading     bool   `json:"loading"`
	Items       int    `json:"items"`
	Fetches     int    `json:"fetches"`
	Indexed     bool   `json:"indexed"`
	Builds      int    `json:"builds"`
	Docs        int    `json:"docs"`
	Duplicates  int    `json:"duplicates"`
	Fingerprint string `json:"fingerprint,omitempty"`
	LoadError   string `json:"loadError,omitempty"`
}

// Service is one search session over a catalog collection.
type Service struct {
	opts   Options
	logger *log.Logger

	// base scopes background loads; Close cancels it.
	base   context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	items    []catalog.Item
	loaded   bool
	inflight chan struct{}
	loadErr  error
	fetches  int
	ix       *search.Index
	builds   int
	closed   bool
	warned   bool

	buildMu sync.Mutex
	wg      sync.WaitGroup
}

// New creates a Service.
func New(opts Options) (*Service, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	base, cancel := context.WithCancel(context.Background())
	return &Service{opts: opts, logger: logger, base: base, cancel: cancel}, nil
}

// Load fetches the collection from the source. A successful load is never
// repeated; after a failed load the next call fetches again. Callers that
// arrive while a fetch is in flight wait for it and share its result.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.loaded {
		s.mu.Unlock()
		return nil
	}
	if s.opts.Source == nil {
		s.mu.Unlock()
		return ErrNoSource
	}
	if ch := s.inflight; ch != nil {
		s.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.loadErr
	}
	ch := s.beginFetchLocked()
	s.mu.Unlock()

	return s.fetch(ctx, ch)
}

// LoadAsync starts a load in the background unless the collection is
// already loaded or a fetch is in flight. It returns immediately. A started
// fetch is not canceled when a later query arrives; it ends when ctx is
// done or the Service is closed.
func (s *Service) LoadAsync(ctx context.Context) {
	s.mu.Lock()
	if s.closed || s.loaded || s.inflight != nil || s.opts.Source == nil {
		s.mu.Unlock()
		return
	}
	ch := s.beginFetchLocked()
	s.wg.Add(1)
	s.mu.Unlock()

	fetchCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.base, cancel)
	go func() {
		defer s.wg.Done()
		defer cancel()
		defer stop()
		_ = s.fetch(fetchCtx, ch)
	}()
}

func (s *Service) beginFetchLocked() chan struct{} {
	ch := make(chan struct{})
	s.inflight = ch
	s.fetches++
	return ch
}

func (s *Service) fetch(ctx context.Context, ch chan struct{}) error {
	items, err := s.opts.Source.Fetch(ctx)

	s.mu.Lock()
	s.inflight = nil
	if err != nil {
		s.loadErr = err
	} else if !s.loaded {
		if items == nil {
			items = []catalog.Item{}
		}
		s.items = items
		s.loaded = true
		s.loadErr = nil
	}
	s.mu.Unlock()
	close(ch)

	if err != nil {
		s.logger.Printf("catalog load failed: %v", err)
		return err
	}
	s.logger.Printf("catalog loaded: %d items", len(items))
	return nil
}

// Wait blocks until background loads started by LoadAsync have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// EnsureIndexed builds the index from items if and only if none exists for
// this session. Calling it again, with any collection, does not rebuild.
// When no collection has been loaded yet, items also becomes the session's
// collection.
func (s *Service) EnsureIndexed(items []catalog.Item) error {
	s.mu.Lock()
	if !s.loaded && !s.closed {
		s.items = items
		s.loaded = true
	}
	existing := s.ix
	s.mu.Unlock()

	if existing != nil {
		s.warnIfDifferent(existing, items)
		return nil
	}
	_, err := s.ensureIndexed(items)
	return err
}

func (s *Service) warnIfDifferent(ix *search.Index, items []catalog.Item) {
	if search.Fingerprint(items) == ix.Stats().Fingerprint {
		return
	}
	s.mu.Lock()
	warned := s.warned
	s.warned = true
	s.mu.Unlock()
	if !warned {
		s.logger.Printf("index already built; ignoring different collection of %d items", len(items))
	}
}

func (s *Service) ensureIndexed(items []catalog.Item) (*search.Index, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	s.mu.Lock()
	ix, closed := s.ix, s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	if ix != nil {
		return ix, nil
	}

	ix, err := search.Build(items, s.opts.Search)
	if err != nil {
		s.logger.Printf("index build failed: %v", err)
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = ix.Close()
		return nil, ErrClosed
	}
	s.ix = ix
	s.builds++
	s.mu.Unlock()

	st := ix.Stats()
	s.logger.Printf("index built: %d docs, %d duplicates, %d invalid", st.Docs, len(st.Duplicates), st.Invalid)
	return ix, nil
}

// Query returns the ranked matches for text. Nothing is produced for an
// empty or whitespace-only text, or when the collection has not loaded
// yet. The index is built on first use and hits are pulled from it one
// page at a time as the sequence is consumed.
func (s *Service) Query(ctx context.Context, text string) iter.Seq2[Hit, error] {
	return func(yield func(Hit, error) bool) {
		if strings.TrimSpace(text) == "" {
			return
		}

		s.mu.Lock()
		items, loaded, closed := s.items, s.loaded, s.closed
		s.mu.Unlock()
		if closed {
			yield(Hit{}, ErrClosed)
			return
		}
		if !loaded {
			if s.opts.FetchOnQuery {
				s.LoadAsync(s.base)
			}
			return
		}

		ix, err := s.ensureIndexed(items)
		if err != nil {
			yield(Hit{}, err)
			return
		}

		rank := 0
		for h, err := range ix.All(ctx, text) {
			if err != nil {
				yield(Hit{}, err)
				return
			}
			if !yield(Hit{Item: h.Item, Score: h.Score, Rank: rank}, nil) {
				return
			}
			rank++
		}
	}
}

// Collect drains Query into a slice of at most limit hits.
// A limit <= 0 collects every hit.
func (s *Service) Collect(ctx context.Context, text string, limit int) ([]Hit, error) {
	var hits []Hit
	for h, err := range s.Query(ctx, text) {
		if err != nil {
			return nil, err
		}
		hits = append(hits, h)
		if limit > 0 && len(hits) >= limit {
			break
		}
	}
	return hits, nil
}

// Items returns the loaded collection, or nil before a load.
func (s *Service) Items() []catalog.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// Stats returns a snapshot of the service state.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Loaded:  s.loaded,
		Loading: s.inflight != nil,
		Items:   len(s.items),
		Fetches: s.fetches,
		Indexed: s.ix != nil,
		Builds:  s.builds,
	}
	if s.loadErr != nil {
		st.LoadError = s.loadErr.Error()
	}
	if s.ix != nil {
		ixStats := s.ix.Stats()
		st.Docs = ixStats.Docs
		st.Duplicates = len(ixStats.Duplicates)
		st.Fingerprint = ixStats.Fingerprint
	}
	return st
}

// Close cancels background loads, waits for them and releases the index.
// Queries after Close report ErrClosed.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	ix := s.ix
	s.ix = nil
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	if ix != nil {
		return ix.Close()
	}
	return nil
}
