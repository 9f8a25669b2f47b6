package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonwraymond/appcatalog/search"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "APPCATALOG"

// Config holds the settings of the appcatalog commands.
type Config struct {
	// Source is the path or URL of the JSON item index.
	Source string `mapstructure:"source"`

	// SiteDir is the static site served at /.
	SiteDir string `mapstructure:"siteDir"`

	// Addr is the HTTP listen address.
	Addr string `mapstructure:"addr"`

	// FetchOnQuery defers the catalog load to the first query instead of
	// loading at startup.
	FetchOnQuery bool `mapstructure:"fetchOnQuery"`

	// Watch starts a new search session when a file source changes.
	Watch bool `mapstructure:"watch"`

	SecureCookies bool `mapstructure:"secureCookies"`

	// MaxResults caps the hits of one HTTP search.
	MaxResults int `mapstructure:"maxResults"`

	// SiteRoot prefixes item page links in result cards.
	SiteRoot string `mapstructure:"siteRoot"`

	Search search.Config `mapstructure:"search"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Options controls where Load looks for files.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string

	// Dir is searched for appcatalog.yaml when File is empty. Default: ".".
	Dir string

	// EnvFiles are loaded into the process environment before reading.
	// Missing files are skipped. Default: .env.
	EnvFiles []string
}

// New returns a viper instance with defaults and environment binding set.
// Flags may be bound to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("source", "index.min.json")
	v.SetDefault("siteDir", "")
	v.SetDefault("addr", ":8080")
	v.SetDefault("fetchOnQuery", false)
	v.SetDefault("watch", false)
	v.SetDefault("secureCookies", false)
	v.SetDefault("maxResults", 60)
	v.SetDefault("siteRoot", "../")
	v.SetDefault("search.nameBoost", 2.0)
	v.SetDefault("search.summaryBoost", 1.0)
	v.SetDefault("search.maintainerBoost", 1.0)
	v.SetDefault("search.categoryBoost", 0.5)
	v.SetDefault("search.exactNameBoost", 10.0)
	v.SetDefault("search.fuzzy", 0.5)
	v.SetDefault("search.prefix", false)
	v.SetDefault("search.pageSize", 20)
	v.SetDefault("search.maxResults", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the configuration into a Config. A missing appcatalog.yaml is
// not an error; a missing explicit File is.
func Load(v *viper.Viper, opts Options) (Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
		v.SetConfigName("appcatalog")
		v.SetConfigType("yaml")
	}

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case opts.File != "":
			return Config{}, fmt.Errorf("read config file %s: %w", opts.File, err)
		case !errors.As(err, &notFound):
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		cfg.File = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that have no usable fallback.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("%w: source is required", ErrInvalid)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("%w: maxResults must not be negative", ErrInvalid)
	}
	return nil
}
