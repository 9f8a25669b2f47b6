package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/jonwraymond/appcatalog/catalog"
)

// Card classes.
const (
	CardClass     = "card appimage-card mb-medium"
	DarkCardClass = "saas-card-dark"
)

// Options configures a Renderer.
type Options struct {
	// Columns is the number of result columns. Default: DefaultColumns.
	Columns int

	// Dark adds DarkCardClass to every card.
	Dark bool

	// SiteRoot prefixes item page links. Default: "../".
	SiteRoot string
}

// Renderer renders cards and column layouts.
type Renderer struct {
	opts Options
	tmpl *template.Template
}

type cardData struct {
	Class      string
	Image      string
	Name       string
	Maintainer string
	Summary    string
	Categories template.HTML
	GitHub     string
	Page       string
}

var cardTemplate = template.Must(template.New("card").Parse(`<div class="{{.Class}}">
  <div class="card-content">
    <div class="media">
      <div class="media-left">
        <figure class="image is-128x128">
          <img src="{{.Image}}" style="position:absolute; top:0; left:0; width:100%;" alt="{{.Name}} logo" loading="lazy">
        </figure>
      </div>
      <div class="media-content">
        <p class="title is-4">{{.Name}}</p>
        <p class="subtitle is-6">{{.Maintainer}}</p>
      </div>
    </div>
    <div class="content">
      {{.Summary}}
      <br>
      {{.Categories}}
    </div>
  </div>
  <footer class="card-footer appimage-card-footer">
    <a href="{{.GitHub}}" class="card-footer-item" target="_blank" rel="noreferrer">
      <i class="fa fa-github ss-i"></i><span class="ss-card-footer-text">GitHub</span>
    </a>
    <a href="{{.Page}}" class="card-footer-item" target="_blank" rel="noreferrer">
      <i class="fa fa-wifi ss-i"></i><span class="ss-card-footer-text">Website</span>
    </a>
  </footer>
</div>
`))

// New creates a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Columns <= 0 {
		opts.Columns = DefaultColumns
	}
	if opts.SiteRoot == "" {
		opts.SiteRoot = "../"
	}
	tmpl, err := cardTemplate.Clone()
	if err != nil {
		return nil, fmt.Errorf("clone card template: %w", err)
	}
	return &Renderer{opts: opts, tmpl: tmpl}, nil
}

// WithDark returns a Renderer sharing r's template with the dark card
// class switched on or off.
func (r *Renderer) WithDark(dark bool) *Renderer {
	if r.opts.Dark == dark {
		return r
	}
	c := *r
	c.opts.Dark = dark
	return &c
}

// PageLink returns the link to the item's own page.
func (r *Renderer) PageLink(it catalog.Item) string {
	return r.opts.SiteRoot + it.Slug()
}

// Card writes the markup of one item card.
func (r *Renderer) Card(w io.Writer, it catalog.Item) error {
	class := CardClass
	if r.opts.Dark {
		class += " " + DarkCardClass
	}
	// categories_html is generator output and trusted.
	data := cardData{
		Class:      class,
		Image:      it.Image,
		Name:       it.Name,
		Maintainer: it.Maintainer,
		Summary:    it.Summary,
		Categories: template.HTML(it.CategoriesHTML),
		GitHub:     it.GitHub.String(),
		Page:       r.PageLink(it),
	}
	return r.tmpl.Execute(w, data)
}

// Columns writes the column containers with items distributed
// round-robin in rank order. Every column is written, even when empty.
func (r *Renderer) Columns(w io.Writer, items []catalog.Item) error {
	for c, col := range Distribute(items, r.opts.Columns) {
		var buf bytes.Buffer
		for _, it := range col {
			if err := r.Card(&buf, it); err != nil {
				return fmt.Errorf("render card %q: %w", it.Name, err)
			}
		}
		if _, err := fmt.Fprintf(w, "<div class=\"column\" id=\"%s\">\n%s</div>\n", ColumnID(c), buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
