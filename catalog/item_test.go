package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const sampleCategoriesHTML = `<div class="field is-grouped is-grouped-multiline  appimage-left-top-margin">` +
	`<div class="control"><div class="tags has-addons">` +
	`<a class="tag is-link" href="../search?q=Graphics">Graphics</a><span class="tag is-dark">#</span>` +
	`</div></div>` +
	`<div class="control"><div class="tags has-addons">` +
	`<a class="tag is-link" href="../search?q=Photography">Photography</a><span class="tag is-dark">#</span>` +
	`</div></div></div>`

func TestItemValidate(t *testing.T) {
	if err := (Item{Name: "Krita"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"", "   "} {
		err := (Item{Name: name}).Validate()
		if !errors.Is(err, ErrInvalidItem) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidItem", name, err)
		}
	}
}

func TestItemSlug(t *testing.T) {
	if got := (Item{Name: "VLC-Media"}).Slug(); got != "vlc-media" {
		t.Errorf("expected slug 'vlc-media', got %q", got)
	}
}

func TestExtractCategories(t *testing.T) {
	got := ExtractCategories(sampleCategoriesHTML)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d (%v)", len(got), got)
	}
	if got[0] != "Graphics" || got[1] != "Photography" {
		t.Errorf("unexpected categories: %v", got)
	}
}

func TestExtractCategories_Empty(t *testing.T) {
	if got := ExtractCategories("   "); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	if got := ExtractCategories("<div>no tags here</div>"); len(got) != 0 {
		t.Errorf("expected no categories, got %v", got)
	}
}

func TestItemLabels_FallsBackToMarkup(t *testing.T) {
	it := Item{Name: "Darktable", CategoriesHTML: sampleCategoriesHTML}
	if got := it.Labels(); len(got) != 2 {
		t.Errorf("expected 2 labels from markup, got %v", got)
	}

	it.Categories = []string{"Office"}
	if got := it.Labels(); len(got) != 1 {
		t.Errorf("expected plain categories to win, got %v", got)
	}

	if got := (Item{Name: "bare"}).Labels(); got != nil {
		t.Errorf("expected nil labels, got %v", got)
	}
}

func TestLinkUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Link
	}{
		{"string", `"https://github.com/a/b"`, "https://github.com/a/b"},
		{"trimmed", `"  https://github.com/a/b "`, "https://github.com/a/b"},
		{"null", `null`, ""},
		{"list", `["", "https://github.com/c/d", "https://x"]`, "https://github.com/c/d"},
		{"empty list", `[]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Link
			if err := json.Unmarshal([]byte(tt.in), &l); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if l != tt.want {
				t.Errorf("expected %q, got %q", tt.want, l)
			}
		})
	}
}

func TestLinkUnmarshal_RejectsObjects(t *testing.T) {
	var l Link
	if err := json.Unmarshal([]byte(`{"url":"x"}`), &l); err == nil {
		t.Error("expected error for object link")
	}
}

func TestDecode(t *testing.T) {
	in := `[
		{"id":"1","name":"Firefox","summary":"Web browser","maintainer":"mozilla","github":"https://github.com/mozilla/gecko-dev","image":"ff.png","categories_html":""},
		{"name":"Inkscape","summary":null,"maintainer":"inkscape","github":null}
	]`
	items, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].GitHub.String() != "https://github.com/mozilla/gecko-dev" {
		t.Errorf("unexpected github link %q", items[0].GitHub)
	}
	if items[1].Summary != "" || items[1].GitHub != "" {
		t.Errorf("expected null fields to decode as empty, got %+v", items[1])
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, in := range []string{`{"name":"not an array"}`, `[{"name":`, ``} {
		_, err := Decode(strings.NewReader(in))
		if !errors.Is(err, ErrMalformedIndex) {
			t.Errorf("Decode(%q) = %v, want ErrMalformedIndex", in, err)
		}
	}
}
