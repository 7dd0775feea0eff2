package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/bookify/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   listen address (e.g. ":8080")
//	-d string   PostgreSQL DSN; empty keeps reviews in memory
//	-k string   token signing key
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-k"})

	fs := flag.NewFlagSet("bookify-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "secret key")

	return fs.Parse(args)
}
