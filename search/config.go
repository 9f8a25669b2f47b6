package search

// Config configures field weighting and matching.
// Zero values select the defaults documented on each field.
type Config struct {
	// NameBoost weights matches on the item name. Default: 2.
	NameBoost float64

	// SummaryBoost weights matches on the summary. Default: 1.
	SummaryBoost float64

	// MaintainerBoost weights matches on the maintainer. Default: 1.
	MaintainerBoost float64

	// CategoryBoost weights matches on category labels. Default: 0.5.
	CategoryBoost float64

	// ExactNameBoost multiplies NameBoost when the whole query equals an
	// item name, ignoring case. Default: 10.
	ExactNameBoost float64

	// Fuzzy is the tolerated edit distance as a fraction of term length.
	// Default: 0.5. A negative value disables fuzzy matching.
	Fuzzy float64

	// Prefix also matches indexed terms that start with a query term.
	Prefix bool

	// PageSize is the number of hits fetched from the index per round trip.
	// Default: 20.
	PageSize int

	// MaxResults caps the hits a single query yields. 0 = unlimited.
	MaxResults int
}

const (
	defaultNameBoost       = 2
	defaultSummaryBoost    = 1
	defaultMaintainerBoost = 1
	defaultCategoryBoost   = 0.5
	defaultExactNameBoost  = 10
	defaultFuzzy           = 0.5
	defaultPageSize        = 20

	// maxFuzziness is the largest edit distance the index supports.
	maxFuzziness = 2
)

func (c Config) withDefaults() Config {
	if c.NameBoost <= 0 {
		c.NameBoost = defaultNameBoost
	}
	if c.SummaryBoost <= 0 {
		c.SummaryBoost = defaultSummaryBoost
	}
	if c.MaintainerBoost <= 0 {
		c.MaintainerBoost = defaultMaintainerBoost
	}
	if c.CategoryBoost <= 0 {
		c.CategoryBoost = defaultCategoryBoost
	}
	if c.ExactNameBoost <= 0 {
		c.ExactNameBoost = defaultExactNameBoost
	}
	if c.Fuzzy == 0 {
		c.Fuzzy = defaultFuzzy
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.MaxResults < 0 {
		c.MaxResults = 0
	}
	return c
}
