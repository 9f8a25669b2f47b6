package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/appcatalog/index"
	"github.com/jonwraymond/appcatalog/render"
)

// Config configures a Server.
type Config struct {
	ServerInfo ServerInfo

	// SiteDir is the static site served at /. Empty disables static files.
	SiteDir string

	// Render configures the result cards. Dark is taken from the request's
	// preference cookies.
	Render render.Options

	// MaxResults caps the hits of one search request. Default: 60.
	MaxResults int

	// SecureCookies marks preference cookies Secure.
	SecureCookies bool

	// Logger receives request errors. If nil, logs are discarded.
	Logger *log.Logger
}

// ServerInfo describes this server in the MCP initialize response and
// in /healthz.
type ServerInfo struct {
	Name    string
	Version string
}

const defaultMaxResults = 60

// Server serves an index.Service over HTTP and MCP.
type Server struct {
	svc      atomic.Pointer[index.Service]
	cfg      Config
	logger   *log.Logger
	renderer *render.Renderer
	mcp      *mcp.Server
	handler  http.Handler
}

// New creates a Server for svc.
func New(svc *index.Service, cfg Config) (*Server, error) {
	if svc == nil {
		return nil, ErrNoService
	}
	if cfg.ServerInfo.Name == "" {
		cfg.ServerInfo.Name = "appcatalog"
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	renderer, err := render.New(cfg.Render)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		renderer: renderer,
	}
	s.svc.Store(svc)
	s.mcp = s.newMCPServer()
	s.handler = s.routes()
	return s, nil
}

// Session returns the service currently answering requests.
func (s *Server) Session() *index.Service {
	return s.svc.Load()
}

// Replace starts answering requests from svc and returns the previous
// service. Requests already running keep using the previous service; once
// the caller closes it they fail with index.ErrClosed (503), so callers
// should close it only after those requests have had time to finish.
func (s *Server) Replace(svc *index.Service) (*index.Service, error) {
	if svc == nil {
		return nil, ErrNoService
	}
	return s.svc.Swap(svc), nil
}

// Handler returns the HTTP handler for the site, the API and /mcp.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// ServeStdio runs the MCP server over stdio.
// Blocks until the client disconnects or ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/prefs", s.handleGetPrefs)
	mux.HandleFunc("POST /api/prefs/{key}/{value}", s.handleSetPrefs)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil))
	if s.cfg.SiteDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.SiteDir)))
	}
	return mux
}
