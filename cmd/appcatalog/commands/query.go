package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/appcatalog/server"
)

func newQueryCommand(a *app) *cobra.Command {
	var (
		limit   int
		remote  string
		headers []string
		retries int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Search the catalog and print ranked hits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			var (
				res server.SearchResult
				err error
			)
			start := time.Now()
			if remote != "" {
				var rc server.RemoteConfig
				rc, err = remoteConfig(remote, headers, retries)
				if err != nil {
					return err
				}
				res, err = queryRemote(cmd.Context(), rc, text, limit)
			} else {
				res, err = a.queryLocal(cmd.Context(), text, limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printHits(out, res, time.Since(start))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of hits")
	cmd.Flags().StringVar(&remote, "remote", "", "query a running server's MCP endpoint (http, https or sse URL) instead of loading the source")
	cmd.Flags().StringArrayVar(&headers, "header", nil, "extra request header for --remote, as key=value (repeatable)")
	cmd.Flags().IntVar(&retries, "retries", 0, "reconnect attempts for --remote streamable HTTP (0 uses the transport default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print hits as JSON")
	return cmd
}

func (a *app) queryLocal(ctx context.Context, text string, limit int) (server.SearchResult, error) {
	svc, err := a.newSession()
	if err != nil {
		return server.SearchResult{}, err
	}
	defer func() { _ = svc.Close() }()

	if err := svc.Load(ctx); err != nil {
		return server.SearchResult{}, err
	}
	hits, err := svc.Collect(ctx, text, limit)
	if err != nil {
		return server.SearchResult{}, err
	}

	res := server.SearchResult{Query: text, Loaded: true, Hits: make([]server.SearchHit, 0, len(hits))}
	for _, h := range hits {
		res.Hits = append(res.Hits, server.NewSearchHit(h, a.cfg.SiteRoot+h.Item.Slug()))
	}
	return res, nil
}

// remoteConfig builds the dial config from the --remote flags.
func remoteConfig(url string, headers []string, retries int) (server.RemoteConfig, error) {
	rc := server.RemoteConfig{URL: url, MaxRetries: retries}
	for _, h := range headers {
		k, v, ok := strings.Cut(h, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return server.RemoteConfig{}, fmt.Errorf("invalid --header %q: want key=value", h)
		}
		if rc.Headers == nil {
			rc.Headers = make(map[string]string)
		}
		rc.Headers[k] = strings.TrimSpace(v)
	}
	return rc, nil
}

func queryRemote(ctx context.Context, rc server.RemoteConfig, text string, limit int) (server.SearchResult, error) {
	client, err := server.Dial(ctx, rc)
	if err != nil {
		return server.SearchResult{}, err
	}
	defer func() { _ = client.Close() }()
	return client.Search(ctx, text, limit)
}

func printHits(w io.Writer, res server.SearchResult, took time.Duration) error {
	if len(res.Hits) == 0 {
		pterm.Warning.WithWriter(w).Printfln("No matches for %q", res.Query)
		return nil
	}

	data := pterm.TableData{{"#", "Name", "Maintainer", "Categories", "Score"}}
	for _, h := range res.Hits {
		data = append(data, []string{
			humanize.Ordinal(h.Rank + 1),
			pterm.Green(h.Name),
			h.Maintainer,
			strings.Join(h.Categories, ", "),
			fmt.Sprintf("%.3f", h.Score),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render(); err != nil {
		return err
	}
	pterm.Info.WithWriter(w).Printfln("%s hits in %s", humanize.Comma(int64(len(res.Hits))), took.Round(time.Millisecond))
	return nil
}
