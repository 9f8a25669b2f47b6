// Package index provides the search index service behind the catalog's
// search box.
//
// A [Service] is one search session. It owns the loaded item collection
// and the full-text index built over it, and it guarantees:
//
//   - Empty or whitespace-only queries return nothing and touch neither
//     the source nor the index.
//   - Queries issued before the collection has loaded return nothing. With
//     Options.FetchOnQuery the first such query starts the load in the
//     background.
//   - The index is built at most once per Service, on the first query
//     that finds the collection loaded.
//
// # Usage
//
//	src, _ := catalog.SourceFor("public/index.min.json")
//	svc, err := index.New(index.Options{Source: src})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	if err := svc.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	for hit, err := range svc.Query(ctx, "krita") {
//	    ...
//	}
//
// # Thread Safety
//
// All Service methods are safe for concurrent use. Concurrent loads share
// one fetch; concurrent first queries share one index build.
package index
