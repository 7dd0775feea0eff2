package config

import (
	"github.com/dmitrijs2005/bookify/internal/configfile"
	"github.com/dmitrijs2005/bookify/internal/flagx"
	"github.com/dmitrijs2005/bookify/internal/timex"
)

// FileConfig is the DTO for JSON and YAML files. Only keys present in the
// file override the current values.
type FileConfig struct {
	ReviewServiceURL string          `json:"review_service_url" yaml:"review_service_url"`
	CatalogURL       string          `json:"catalog_url" yaml:"catalog_url"`
	RequestTimeout   *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath     string          `json:"database_path" yaml:"database_path"`
	SearchMaxResults int             `json:"search_max_results" yaml:"search_max_results"`
	LogLevel         string          `json:"log_level" yaml:"log_level"`
}

func parseFile(cfg *Config, args []string) error {
	var fc FileConfig
	if err := configfile.Load(flagx.ConfigFile(args), &fc); err != nil {
		return err
	}
	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.ReviewServiceURL != "" {
		cfg.ReviewServiceURL = fc.ReviewServiceURL
	}
	if fc.CatalogURL != "" {
		cfg.CatalogURL = fc.CatalogURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.SearchMaxResults > 0 {
		cfg.SearchMaxResults = fc.SearchMaxResults
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
