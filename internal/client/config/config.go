package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/bookify/internal/client/catalog"
)

// Config holds runtime settings for the Bookify CLI.
type Config struct {
	ReviewServiceURL string        `env:"BOOKIFY_REVIEW_SERVICE_URL"`
	CatalogURL       string        `env:"BOOKIFY_CATALOG_URL"`
	RequestTimeout   time.Duration `env:"BOOKIFY_REQUEST_TIMEOUT"`
	DatabasePath     string        `env:"BOOKIFY_DATABASE_PATH"`
	SearchMaxResults int           `env:"BOOKIFY_SEARCH_MAX_RESULTS"`
	LogLevel         string        `env:"BOOKIFY_LOG_LEVEL"`
}

// LoadDefaults populates c with defaults suitable for a local setup.
func (c *Config) LoadDefaults() {
	c.ReviewServiceURL = "http://127.0.0.1:8080"
	c.CatalogURL = catalog.DefaultBaseURL
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "bookify.db"
	c.SearchMaxResults = catalog.DefaultMaxResults
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the file named by -c/-config, the
// environment and finally args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
