package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/bookify/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   review service base URL
//	-t int      request timeout in seconds
//	-d string   local database path
//
// Only these flags are looked at; anything else in args is ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d"})

	fs := flag.NewFlagSet("bookify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ReviewServiceURL, "a", cfg.ReviewServiceURL, "review service base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" && *timeout > 0 {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
