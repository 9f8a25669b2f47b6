package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonwraymond/toolfoundation/model"
)

// Item is one application listing. Items are immutable once loaded.
type Item struct {
	// ID is the generator-assigned identifier. Informational only; Name is
	// the key used for indexing and deduplication.
	ID string `json:"id,omitempty"`

	// Name is the unique identifier and the primary search key.
	Name string `json:"name"`

	Summary    string `json:"summary"`
	Maintainer string `json:"maintainer"`

	// Categories holds plain category labels when the generator emitted them.
	Categories []string `json:"categories,omitempty"`

	// CategoriesHTML is trusted, pre-rendered tag markup.
	CategoriesHTML string `json:"categories_html"`

	// Image is the icon URL.
	Image string `json:"image"`

	// GitHub is the project link.
	GitHub Link `json:"github"`
}

// Validate reports whether the item can be indexed.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	return nil
}

// Slug returns the lowercased name used for the item's page path.
func (it Item) Slug() string {
	return strings.ToLower(it.Name)
}

// Labels returns normalized category labels. When Categories is empty the
// labels are extracted from CategoriesHTML.
func (it Item) Labels() []string {
	raw := it.Categories
	if len(raw) == 0 {
		raw = ExtractCategories(it.CategoriesHTML)
	}
	if len(raw) == 0 {
		return nil
	}
	return model.NormalizeTags(raw)
}

// ExtractCategories returns the category labels found in generator tag
// markup, in document order. Each category is rendered as an
// <a class="tag is-link"> element.
func ExtractCategories(markup string) []string {
	if strings.TrimSpace(markup) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	var labels []string
	doc.Find("a.tag").Each(func(_ int, s *goquery.Selection) {
		if label := strings.TrimSpace(s.Text()); label != "" {
			labels = append(labels, label)
		}
	})
	return labels
}

// Link is a project URL. The generator has emitted it as a string, as a
// list of strings and as null; Link accepts all three and keeps the first
// non-empty entry.
type Link string

// UnmarshalJSON implements json.Unmarshaler.
func (l *Link) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = ""
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var links []string
		if err := json.Unmarshal(data, &links); err != nil {
			return err
		}
		*l = ""
		for _, link := range links {
			if link = strings.TrimSpace(link); link != "" {
				*l = Link(link)
				break
			}
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = Link(strings.TrimSpace(s))
	return nil
}

// String returns the URL.
func (l Link) String() string {
	return string(l)
}
