package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/appcatalog/catalog"
	"github.com/jonwraymond/appcatalog/render"
	"github.com/jonwraymond/appcatalog/server"
)

const shutdownTimeout = 10 * time.Second

// reloadGrace is how long a replaced session keeps answering requests that
// were already running when a reload swapped it out.
var reloadGrace = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site, the search API and MCP over HTTP",
		Long: `serve starts an HTTP server with the static site, /api/search, /api/prefs,
/healthz and the MCP endpoint at /mcp. Unless fetchOnQuery is set the
catalog starts loading immediately; queries answered before it finishes
return no results.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address")
	flags.String("site", "", "static site directory served at /")
	flags.Bool("watch", false, "start a new session when the source file changes")
	flags.Bool("fetch-on-query", false, "defer loading until the first query")
	a.bind("addr", flags.Lookup("addr"))
	a.bind("siteDir", flags.Lookup("site"))
	a.bind("watch", flags.Lookup("watch"))
	a.bind("fetchOnQuery", flags.Lookup("fetch-on-query"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	svc, err := a.newSession()
	if err != nil {
		return err
	}
	if !a.cfg.FetchOnQuery {
		svc.LoadAsync(ctx)
	}

	srv, err := server.New(svc, server.Config{
		ServerInfo:    server.ServerInfo{Name: "appcatalog", Version: Version},
		SiteDir:       a.cfg.SiteDir,
		Render:        render.Options{SiteRoot: a.cfg.SiteRoot},
		MaxResults:    a.cfg.MaxResults,
		SecureCookies: a.cfg.SecureCookies,
		Logger:        a.logger,
	})
	if err != nil {
		_ = svc.Close()
		return err
	}
	defer func() { _ = srv.Session().Close() }()

	if a.cfg.Watch {
		src, err := catalog.SourceFor(a.cfg.Source)
		if err != nil {
			return err
		}
		if fs, ok := src.(*catalog.FileSource); ok {
			go func() {
				if err := watchFile(ctx, fs.Path, defaultDebounce, a.logger, func() { a.reload(ctx, srv) }); err != nil {
					a.logger.Printf("watch %s: %v", fs.Path, err)
				}
			}()
		} else {
			pterm.Warning.Printfln("--watch needs a file source; %s is not watched", a.cfg.Source)
		}
	}

	httpServer := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	pterm.Success.Printfln("Serving %s on %s", a.cfg.Source, a.cfg.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	pterm.Info.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// reload loads the source into a new session and swaps it in. The old
// session keeps serving when the new one fails to load, and is closed
// reloadGrace after a successful swap.
func (a *app) reload(ctx context.Context, srv *server.Server) {
	next, err := a.newSession()
	if err != nil {
		a.logger.Printf("reload: %v", err)
		return
	}
	if err := next.Load(ctx); err != nil {
		a.logger.Printf("reload: %v", err)
		_ = next.Close()
		return
	}
	prev, err := srv.Replace(next)
	if err != nil {
		_ = next.Close()
		return
	}
	time.AfterFunc(reloadGrace, func() { _ = prev.Close() })
	a.logger.Printf("reloaded %s: %d items", a.cfg.Source, len(next.Items()))
}
