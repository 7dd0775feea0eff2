// Package config handles configuration for the review service: defaults, a
// JSON or YAML file overlay, BOOKIFY_* environment variables and
// command-line flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the review service.
//
// An empty DatabaseDSN selects in-memory storage, which is lost on restart.
// SecretKey signs bearer tokens (HS256); the default is for local use only.
type Config struct {
	Address       string        `env:"BOOKIFY_ADDRESS"`
	DatabaseDSN   string        `env:"BOOKIFY_DATABASE_DSN"`
	SecretKey     string        `env:"BOOKIFY_SECRET_KEY"`
	TokenValidity time.Duration `env:"BOOKIFY_TOKEN_VALIDITY"`
	LogLevel      string        `env:"BOOKIFY_LOG_LEVEL"`
}

func (c *Config) LoadDefaults() {
	c.Address = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.LogLevel = "info"
}

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

func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
