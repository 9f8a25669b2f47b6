package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonwraymond/toolfoundation/model"

	"github.com/jonwraymond/appcatalog/catalog"
	"github.com/jonwraymond/appcatalog/index"
	"github.com/jonwraymond/appcatalog/prefs"
)

// PrefsResponse is the body of the /api/prefs endpoints.
type PrefsResponse struct {
	Preferences prefs.Preferences `json:"preferences"`
	State       prefs.State       `json:"state"`
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status     string      `json:"status"`
	Server     string      `json:"server"`
	Version    string      `json:"version,omitempty"`
	MCPVersion string      `json:"mcpVersion"`
	Stats      index.Stats `json:"stats"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("q")

	limit, err := s.limit(q.Get("limit"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	svc := s.Session()
	hits, err := svc.Collect(r.Context(), text, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if q.Get("format") == "json" {
		writeJSON(w, http.StatusOK, s.result(svc, text, hits))
		return
	}

	items := make([]catalog.Item, len(hits))
	for i, h := range hits {
		items[i] = h.Item
	}
	var buf bytes.Buffer
	if err := s.renderer.WithDark(prefs.Read(r).Dark()).Columns(&buf, items); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// limit parses the optional limit parameter, capped at MaxResults.
func (s *Server) limit(raw string) (int, error) {
	if raw == "" {
		return s.cfg.MaxResults, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: limit %q", ErrBadRequest, raw)
	}
	if n == 0 || n > s.cfg.MaxResults {
		return s.cfg.MaxResults, nil
	}
	return n, nil
}

func (s *Server) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	p := prefs.Read(r)
	writeJSON(w, http.StatusOK, PrefsResponse{Preferences: p, State: p.State()})
}

func (s *Server) handleSetPrefs(w http.ResponseWriter, r *http.Request) {
	p := prefs.Read(r)
	pw := prefs.NewWriter(w)
	pw.Secure = s.cfg.SecureCookies
	if err := pw.Apply(&p, r.PathValue("key"), r.PathValue("value")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PrefsResponse{Preferences: p, State: p.State()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Server:     s.cfg.ServerInfo.Name,
		Version:    s.cfg.ServerInfo.Version,
		MCPVersion: model.MCPVersion,
		Stats:      s.Session().Stats(),
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
