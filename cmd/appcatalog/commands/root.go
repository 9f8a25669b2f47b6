package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonwraymond/appcatalog/catalog"
	"github.com/jonwraymond/appcatalog/config"
	"github.com/jonwraymond/appcatalog/index"
)

// Version is reported by the MCP server and /healthz.
var Version = "dev"

type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
	logger  *log.Logger
}

// NewRootCommand returns the appcatalog command tree.
func NewRootCommand() *cobra.Command {
	a := &app{
		v:      config.New(),
		logger: log.New(os.Stderr, "appcatalog: ", log.LstdFlags),
	}

	root := &cobra.Command{
		Use:   "appcatalog",
		Short: "Search an application catalog",
		Long: `appcatalog loads a static JSON index of application listings and answers
fuzzy, field-weighted queries over it, from the command line, over HTTP
or as an MCP server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initializeConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./appcatalog.yaml)")
	flags.String("source", "", "path or URL of the JSON item index")
	flags.Bool("prefix", false, "also match terms by prefix")
	flags.Float64("fuzzy", 0, "tolerated edit distance as a fraction of term length (negative disables)")
	a.bind("source", flags.Lookup("source"))
	a.bind("search.prefix", flags.Lookup("prefix"))
	a.bind("search.fuzzy", flags.Lookup("fuzzy"))

	root.AddCommand(newServeCommand(a), newQueryCommand(a), newMCPCommand(a))
	return root
}

func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

func (a *app) initializeConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, config.Options{File: a.cfgFile})
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.File != "" && cmd.Name() != "mcp" {
		pterm.Info.Printfln("Using config file: %s", cfg.File)
	}
	return nil
}

// newSession creates a search session over the configured source.
func (a *app) newSession() (*index.Service, error) {
	src, err := catalog.SourceFor(a.cfg.Source)
	if err != nil {
		return nil, err
	}
	return index.New(index.Options{
		Source:       src,
		Search:       a.cfg.Search,
		FetchOnQuery: a.cfg.FetchOnQuery,
		Logger:       a.logger,
	})
}
