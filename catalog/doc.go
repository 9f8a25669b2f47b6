// Package catalog defines the application listing records served by the
// catalog site and the sources they are loaded from.
//
// The listing is a pre-built JSON array (conventionally index.min.json)
// produced by the site generator. Each element is an [Item]:
//
//	[
//	  {
//	    "id": "3f0c…",
//	    "name": "Firefox",
//	    "summary": "Web browser",
//	    "maintainer": "mozilla",
//	    "categories": ["Network", "WebBrowser"],
//	    "categories_html": "<div class=\"field is-grouped\">…</div>",
//	    "image": "https://…/firefox.png",
//	    "github": "https://github.com/mozilla/gecko-dev"
//	  }
//	]
//
// # Sources
//
// A [Source] fetches the whole collection at once. [SourceFor] picks a
// [FileSource] or [HTTPSource] from a location string:
//
//	src, err := catalog.SourceFor("https://example.org/index.min.json")
//	items, err := src.Fetch(ctx)
//
// # Categories
//
// Older listings only carry pre-rendered category markup. [Item.Labels]
// returns normalized category labels, extracting them from
// categories_html when the plain list is missing.
package catalog
