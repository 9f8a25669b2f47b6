// Package server exposes a catalog search session over HTTP and MCP.
//
// The HTTP surface serves the static site directory and three endpoints:
//
//	GET  /api/search?q=...            three result columns as an HTML fragment
//	GET  /api/search?q=...&format=json ranked hits as JSON
//	GET  /api/prefs                   preference cookies and the UI state they imply
//	POST /api/prefs/{key}/{value}     set one preference cookie
//	GET  /healthz                     service stats
//
// The same session is published as an MCP server with the search_catalog
// and catalog_stats tools, over stdio ([Server.ServeStdio]) or streamable
// HTTP at /mcp. [Dial] connects to such a server from another process.
//
// Example usage:
//
//	svc, _ := index.New(index.Options{Source: src})
//	srv, _ := server.New(svc, server.Config{
//	    ServerInfo: server.ServerInfo{Name: "appcatalog", Version: "1.0.0"},
//	    SiteDir:    "./site",
//	})
//	http.ListenAndServe(":8080", srv.Handler())
package server
