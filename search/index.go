package search

import (
	"context"
	"fmt"
	"iter"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/jonwraymond/appcatalog/catalog"
)

// Indexed field names.
const (
	fieldName       = "name"
	fieldNameKey    = "name_key"
	fieldSummary    = "summary"
	fieldMaintainer = "maintainer"
	fieldCategories = "categories"
)

// Hit is one ranked match.
type Hit struct {
	Item  catalog.Item
	Score float64
}

// Page is one slice of a ranked result list.
type Page struct {
	Hits []Hit

	// Total is the number of matching items across all pages.
	Total uint64
}

// Stats describes what Build indexed.
type Stats struct {
	// Docs is the number of indexed items.
	Docs int

	// Duplicates lists names that appeared more than once. The first
	// record with a given name is the one indexed.
	Duplicates []string

	// Invalid counts records skipped because they had no name.
	Invalid int

	// Fingerprint identifies the collection passed to Build.
	Fingerprint string
}

// Index is an immutable full-text index over a catalog collection.
type Index struct {
	cfg      Config
	mapping  *mapping.IndexMappingImpl
	items    map[string]catalog.Item
	stats    Stats
	fieldSet []weightedField

	mu     sync.RWMutex
	idx    bleve.Index
	closed bool
}

type weightedField struct {
	name  string
	boost float64
}

// Build indexes items. Records are keyed by name; duplicates and records
// without a name are skipped and reported in Stats.
func Build(items []catalog.Item, cfg Config) (*Index, error) {
	cfg = cfg.withDefaults()

	m := newMapping()
	idx, err := bleve.NewMemOnly(m)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	ix := &Index{
		cfg:     cfg,
		mapping: m,
		idx:     idx,
		items:   make(map[string]catalog.Item, len(items)),
		stats:   Stats{Fingerprint: Fingerprint(items)},
		fieldSet: []weightedField{
			{fieldName, cfg.NameBoost},
			{fieldSummary, cfg.SummaryBoost},
			{fieldMaintainer, cfg.MaintainerBoost},
			{fieldCategories, cfg.CategoryBoost},
		},
	}

	batch := idx.NewBatch()
	for _, it := range items {
		if it.Validate() != nil {
			ix.stats.Invalid++
			continue
		}
		id := strings.TrimSpace(it.Name)
		if _, dup := ix.items[id]; dup {
			ix.stats.Duplicates = append(ix.stats.Duplicates, id)
			continue
		}
		ix.items[id] = it
		if err := batch.Index(id, indexDocument(it)); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index %q: %w", id, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("index batch: %w", err)
	}
	ix.stats.Docs = len(ix.items)

	return ix, nil
}

func newMapping() *mapping.IndexMappingImpl {
	key := bleve.NewKeywordFieldMapping()
	key.Analyzer = keyword.Name
	key.Store = false
	key.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	doc.Dynamic = false
	for _, f := range []string{fieldName, fieldSummary, fieldMaintainer, fieldCategories} {
		doc.AddFieldMappingsAt(f, textField())
	}
	doc.AddFieldMappingsAt(fieldNameKey, key)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	m.DefaultAnalyzer = standard.Name
	return m
}

func textField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = standard.Name
	fm.Store = false
	fm.IncludeInAll = false
	fm.IncludeTermVectors = false
	return fm
}

func indexDocument(it catalog.Item) map[string]any {
	return map[string]any{
		fieldName:       it.Name,
		fieldNameKey:    nameKey(it.Name),
		fieldSummary:    it.Summary,
		fieldMaintainer: it.Maintainer,
		fieldCategories: strings.Join(it.Labels(), " "),
	}
}

func nameKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Stats returns what Build indexed.
func (ix *Index) Stats() Stats {
	s := ix.stats
	s.Duplicates = append([]string(nil), ix.stats.Duplicates...)
	return s
}

// Len returns the number of indexed items.
func (ix *Index) Len() int {
	return len(ix.items)
}

// Get returns the indexed item with the given name.
func (ix *Index) Get(name string) (catalog.Item, bool) {
	it, ok := ix.items[strings.TrimSpace(name)]
	return it, ok
}

// Search returns up to size hits starting at offset from.
func (ix *Index) Search(ctx context.Context, text string, from, size int) (Page, error) {
	q := ix.buildQuery(text)
	if q == nil || size <= 0 {
		return Page{}, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.closed {
		return Page{}, ErrIndexClosed
	}

	req := bleve.NewSearchRequestOptions(q, size, from, false)
	req.SortBy([]string{"-_score", "_id"})
	res, err := ix.idx.SearchInContext(ctx, req)
	if err != nil {
		return Page{}, fmt.Errorf("search %q: %w", text, err)
	}

	page := Page{Total: res.Total, Hits: make([]Hit, 0, len(res.Hits))}
	for _, dm := range res.Hits {
		it, ok := ix.items[dm.ID]
		if !ok {
			continue
		}
		page.Hits = append(page.Hits, Hit{Item: it, Score: dm.Score})
	}
	return page, nil
}

// All returns every hit for text in rank order. Pages are fetched lazily
// as the sequence is consumed; stopping early skips the remaining pages.
// The sequence yields at most Config.MaxResults hits when that is set.
func (ix *Index) All(ctx context.Context, text string) iter.Seq2[Hit, error] {
	return func(yield func(Hit, error) bool) {
		yielded := 0
		for from := 0; ; {
			size := ix.cfg.PageSize
			if ix.cfg.MaxResults > 0 {
				size = min(size, ix.cfg.MaxResults-yielded)
				if size <= 0 {
					return
				}
			}
			if err := ctx.Err(); err != nil {
				yield(Hit{}, err)
				return
			}

			page, err := ix.Search(ctx, text, from, size)
			if err != nil {
				yield(Hit{}, err)
				return
			}
			for _, h := range page.Hits {
				if !yield(h, nil) {
					return
				}
				yielded++
			}

			from += size
			if len(page.Hits) < size || uint64(from) >= page.Total {
				return
			}
		}
	}
}

// Close releases the index. Searches after Close return ErrIndexClosed.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return nil
	}
	ix.closed = true
	return ix.idx.Close()
}

// buildQuery returns nil when text has nothing searchable.
func (ix *Index) buildQuery(text string) query.Query {
	key := nameKey(text)
	if key == "" {
		return nil
	}

	exact := bleve.NewTermQuery(key)
	exact.SetField(fieldNameKey)
	exact.SetBoost(ix.cfg.NameBoost * ix.cfg.ExactNameBoost)
	clauses := []query.Query{exact}

	for _, term := range ix.terms(text) {
		distance := ix.fuzziness(term)
		for _, f := range ix.fieldSet {
			if distance > 0 {
				fq := bleve.NewFuzzyQuery(term)
				fq.SetField(f.name)
				fq.SetFuzziness(distance)
				fq.SetBoost(f.boost)
				clauses = append(clauses, fq)
			} else {
				tq := bleve.NewTermQuery(term)
				tq.SetField(f.name)
				tq.SetBoost(f.boost)
				clauses = append(clauses, tq)
			}
			if ix.cfg.Prefix {
				pq := bleve.NewPrefixQuery(term)
				pq.SetField(f.name)
				pq.SetBoost(f.boost / 2)
				clauses = append(clauses, pq)
			}
		}
	}

	return bleve.NewDisjunctionQuery(clauses...)
}

// terms runs text through the same analyzer as the indexed text fields.
func (ix *Index) terms(text string) []string {
	analyzer := ix.mapping.AnalyzerNamed(standard.Name)
	if analyzer == nil {
		return strings.Fields(strings.ToLower(text))
	}
	seen := make(map[string]struct{})
	var terms []string
	for _, tok := range analyzer.Analyze([]byte(text)) {
		term := string(tok.Term)
		if _, ok := seen[term]; ok || term == "" {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

// fuzziness returns the edit distance tolerated for term.
func (ix *Index) fuzziness(term string) int {
	if ix.cfg.Fuzzy < 0 {
		return 0
	}
	d := int(math.Floor(ix.cfg.Fuzzy*float64(utf8.RuneCountInString(term)) + 0.5))
	return min(d, maxFuzziness)
}
