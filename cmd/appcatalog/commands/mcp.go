package commands

import (
	"github.com/spf13/cobra"

	"github.com/jonwraymond/appcatalog/render"
	"github.com/jonwraymond/appcatalog/server"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the catalog as an MCP server over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.newSession()
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			srv, err := server.New(svc, server.Config{
				ServerInfo: server.ServerInfo{Name: "appcatalog", Version: Version},
				Render:     render.Options{SiteRoot: a.cfg.SiteRoot},
				MaxResults: a.cfg.MaxResults,
				Logger:     a.logger,
			})
			if err != nil {
				return err
			}
			return srv.ServeStdio(cmd.Context())
		},
	}
}
