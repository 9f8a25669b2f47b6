package search

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"

	"github.com/jonwraymond/appcatalog/catalog"
)

// Fingerprint returns a stable hash of an item collection. It changes when
// any indexed or displayed field changes, or when the order changes.
func Fingerprint(items []catalog.Item) string {
	h := sha256.New()

	for _, it := range items {
		h.Write([]byte(it.ID))
		h.Write([]byte{0}) // separator

		h.Write([]byte(it.Name))
		h.Write([]byte{0})
		h.Write([]byte(it.Summary))
		h.Write([]byte{0})
		h.Write([]byte(it.Maintainer))
		h.Write([]byte{0})
		h.Write([]byte(it.CategoriesHTML))
		h.Write([]byte{0})
		h.Write([]byte(it.Image))
		h.Write([]byte{0})
		h.Write([]byte(it.GitHub))
		h.Write([]byte{0})

		// Categories are a set; sort for order-independence.
		sorted := slices.Clone(it.Categories)
		slices.Sort(sorted)
		h.Write([]byte(strings.Join(sorted, "\x01")))
		h.Write([]byte{0})

		h.Write([]byte{0x1e}) // record separator
	}

	return hex.EncodeToString(h.Sum(nil))
}
