package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays BOOKIFY_* variables. Unset variables leave the field
// as it is.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
