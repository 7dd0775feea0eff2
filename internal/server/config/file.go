package config

import (
	"github.com/dmitrijs2005/bookify/internal/configfile"
	"github.com/dmitrijs2005/bookify/internal/flagx"
	"github.com/dmitrijs2005/bookify/internal/timex"
)

// FileConfig is the on-disk form of Config. Durations accept either a
// string such as "12h" or integer nanoseconds.
type FileConfig struct {
	Address       string          `json:"address" yaml:"address"`
	DatabaseDSN   string          `json:"database_dsn" yaml:"database_dsn"`
	SecretKey     string          `json:"secret_key" yaml:"secret_key"`
	TokenValidity *timex.Duration `json:"token_validity" yaml:"token_validity"`
	LogLevel      string          `json:"log_level" yaml:"log_level"`
}

func parseFile(cfg *Config, args []string) error {
	var fc FileConfig
	if err := configfile.Load(flagx.ConfigFile(args), &fc); err != nil {
		return err
	}

	if fc.Address != "" {
		cfg.Address = fc.Address
	}
	if fc.DatabaseDSN != "" {
		cfg.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.TokenValidity != nil {
		cfg.TokenValidity = fc.TokenValidity.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}
