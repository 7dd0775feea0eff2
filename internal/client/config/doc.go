// Package config loads runtime configuration for the Bookify CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config.
//  3. Environment variables prefixed with BOOKIFY_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the review service
//	-t int      request timeout (seconds)
//	-d string   path of the local sqlite database
//
// # File schema
//
// Durations are timex.Duration, so they may be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "review_service_url": "http://127.0.0.1:8080",
//	  "catalog_url": "https://www.googleapis.com/books/v1/volumes",
//	  "request_timeout": "15s",
//	  "database_path": "bookify.db",
//	  "search_max_results": 20,
//	  "log_level": "info"
//	}
package config
