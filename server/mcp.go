package server

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/appcatalog/index"
)

// Tool names.
const (
	ToolSearch = "search_catalog"
	ToolStats  = "catalog_stats"
)

const defaultToolLimit = 10

// SearchArgs are the arguments of the search_catalog tool.
type SearchArgs struct {
	Query string `json:"query" jsonschema:"free-text query; small misspellings are tolerated"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of hits to return"`
}

// SearchHit is one ranked item in a SearchResult.
type SearchHit struct {
	Name       string   `json:"name"`
	Summary    string   `json:"summary,omitempty"`
	Maintainer string   `json:"maintainer,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Image      string   `json:"image,omitempty"`
	GitHub     string   `json:"github,omitempty"`
	Page       string   `json:"page"`
	Score      float64  `json:"score"`
	Rank       int      `json:"rank"`
}

// SearchResult is the output of search_catalog and of
// /api/search?format=json.
type SearchResult struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`

	// Loaded is false when the catalog had not loaded yet, in which case
	// Hits is empty.
	Loaded bool `json:"loaded"`
}

func (s *Server) newMCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    s.cfg.ServerInfo.Name,
		Version: s.cfg.ServerInfo.Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearch,
		Description: "Search the application catalog by name, summary, maintainer or category.",
	}, s.searchTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolStats,
		Description: "Report whether the catalog is loaded and indexed.",
	}, s.statsTool)

	return server
}

// searchTool loads the catalog before a non-empty query when a source is
// configured. Empty queries touch neither the source nor the index.
func (s *Server) searchTool(ctx context.Context, _ *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, SearchResult, error) {
	svc := s.Session()
	if strings.TrimSpace(args.Query) == "" {
		return nil, s.result(svc, args.Query, nil), nil
	}
	if err := svc.Load(ctx); err != nil && !errors.Is(err, index.ErrNoSource) {
		return nil, SearchResult{}, err
	}

	limit := args.Limit
	if limit <= 0 {
		limit = defaultToolLimit
	}
	limit = min(limit, s.cfg.MaxResults)

	hits, err := svc.Collect(ctx, args.Query, limit)
	if err != nil {
		return nil, SearchResult{}, err
	}
	return nil, s.result(svc, args.Query, hits), nil
}

func (s *Server) statsTool(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, index.Stats, error) {
	return nil, s.Session().Stats(), nil
}

func (s *Server) result(svc *index.Service, query string, hits []index.Hit) SearchResult {
	out := SearchResult{
		Query:  query,
		Hits:   make([]SearchHit, 0, len(hits)),
		Loaded: svc.Stats().Loaded,
	}
	for _, h := range hits {
		out.Hits = append(out.Hits, NewSearchHit(h, s.renderer.PageLink(h.Item)))
	}
	return out
}

// NewSearchHit converts a ranked hit, linking it to page.
func NewSearchHit(h index.Hit, page string) SearchHit {
	return SearchHit{
		Name:       h.Item.Name,
		Summary:    h.Item.Summary,
		Maintainer: h.Item.Maintainer,
		Categories: h.Item.Labels(),
		Image:      h.Item.Image,
		GitHub:     h.Item.GitHub.String(),
		Page:       page,
		Score:      h.Score,
		Rank:       h.Rank,
	}
}
