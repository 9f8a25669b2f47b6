package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/appcatalog/index"
)

// RemoteConfig describes a connection to a remote catalog MCP server.
type RemoteConfig struct {
	// URL is the MCP endpoint (http(s):// for streamable HTTP, sse:// for SSE).
	URL string
	// Headers are optional HTTP headers for authenticated servers.
	Headers map[string]string
	// MaxRetries controls reconnect attempts for streamable HTTP transport.
	MaxRetries int
	// Transport overrides URL handling when provided (useful for tests).
	Transport mcp.Transport
}

// Client calls the catalog tools of a remote server.
type Client struct {
	session *mcp.ClientSession
}

// Dial connects to the remote server described by cfg.
func Dial(ctx context.Context, cfg RemoteConfig) (*Client, error) {
	transport, err := remoteTransport(cfg)
	if err != nil {
		return nil, err
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "appcatalog-client"}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URL, err)
	}
	return &Client{session: session}, nil
}

// Search calls search_catalog.
func (c *Client) Search(ctx context.Context, query string, limit int) (SearchResult, error) {
	var out SearchResult
	err := c.call(ctx, ToolSearch, map[string]any{"query": query, "limit": limit}, &out)
	return out, err
}

// Stats calls catalog_stats.
func (c *Client) Stats(ctx context.Context) (index.Stats, error) {
	var out index.Stats
	err := c.call(ctx, ToolStats, map[string]any{}, &out)
	return out, err
}

// Close ends the session.
func (c *Client) Close() error {
	return c.session.Close()
}

func (c *Client) call(ctx context.Context, name string, args map[string]any, out any) error {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return fmt.Errorf("call %s: %w", name, err)
	}
	if res.IsError {
		return fmt.Errorf("%w: %s: %s", ErrToolFailed, name, toolResultError(res))
	}

	var raw []byte
	if res.StructuredContent != nil {
		raw, err = json.Marshal(res.StructuredContent)
		if err != nil {
			return fmt.Errorf("call %s: %w", name, err)
		}
	} else {
		raw = []byte(toolResultText(res))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s result: %w", name, err)
	}
	return nil
}

func remoteTransport(cfg RemoteConfig) (mcp.Transport, error) {
	if cfg.Transport != nil {
		return cfg.Transport, nil
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: URL is required", ErrInvalidRemote)
	}

	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRemote, err)
	}

	httpClient := httpClientWithHeaders(cfg.Headers)

	switch parsed.Scheme {
	case "http", "https":
		return &mcp.StreamableClientTransport{
			Endpoint:   cfg.URL,
			HTTPClient: httpClient,
			MaxRetries: cfg.MaxRetries,
		}, nil
	case "sse":
		parsed.Scheme = "http"
		return &mcp.SSEClientTransport{
			Endpoint:   parsed.String(),
			HTTPClient: httpClient,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidRemote, parsed.Scheme)
	}
}

func httpClientWithHeaders(headers map[string]string) *http.Client {
	clone := make(map[string]string, len(headers))
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		clone[k] = v
	}
	if len(clone) == 0 {
		return nil
	}
	return &http.Client{
		Transport: &headerRoundTripper{
			base:    http.DefaultTransport,
			headers: clone,
		},
	}
}

type headerRoundTripper struct {
	base    http.RoundTripper
	headers map[string]string
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	base := h.base
	if base == nil {
		base = http.DefaultTransport
	}
	req = req.Clone(req.Context())
	for key, value := range h.headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	return base.RoundTrip(req)
}

func toolResultText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok && text.Text != "" {
			return text.Text
		}
	}
	return ""
}

func toolResultError(result *mcp.CallToolResult) string {
	if text := toolResultText(result); text != "" {
		return text
	}
	return "no error detail"
}
