// Package search provides the full-text index behind catalog search.
//
// It exists to:
//   - Keep the index service small and free of search-engine details
//   - Give field-weighted, misspelling-tolerant ranking over catalog items
//
// # Usage
//
// The primary type is [Index], built once from the full item collection:
//
//	ix, err := search.Build(items, search.Config{})
//	defer ix.Close()
//
//	for hit, err := range ix.All(ctx, "firefx") {
//	    ...
//	}
//
// # Configuration
//
// [Config] allows customization of field boosts and fuzziness:
//
//	cfg := search.Config{
//	    NameBoost:       2,   // Boost name matches (default: 2)
//	    SummaryBoost:    1,   // (default: 1)
//	    MaintainerBoost: 1,   // (default: 1)
//	    CategoryBoost:   0.5, // (default: 0.5)
//	    Fuzzy:           0.5, // Edit distance per term length (default: 0.5, <0 disables)
//	    PageSize:        20,  // Hits fetched per round trip (default: 20)
//	}
//
// # Behavior
//
// Each query term is matched against every indexed field with an edit
// distance of round(Fuzzy * len(term)), capped at 2. A case-insensitive
// match of the whole query against an item name adds a large boost, so an
// exact name hit ranks above items that only mention the query in their
// summary or maintainer. Empty queries match nothing.
//
// Results are ordered by score DESC, then name ASC, and are pulled from the
// index one page at a time.
//
// # Thread Safety
//
// Index is safe for concurrent use. It never changes after Build.
package search
