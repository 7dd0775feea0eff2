package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookify/internal/client/catalog"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	return &Config{
		ReviewServiceURL: "http://127.0.0.1:8080",
		CatalogURL:       catalog.DefaultBaseURL,
		RequestTimeout:   15 * time.Second,
		DatabasePath:     "bookify.db",
		SearchMaxResults: 20,
		LogLevel:         "info",
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()
	assert.Empty(t, cmp.Diff(defaults(), &c))
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "client.json", `{
		"review_service_url": "http://reviews:9000",
		"request_timeout": "1500ms",
		"search_max_results": 5
	}`)

	cfg, err := Load([]string{"-c", path})
	require.NoError(t, err)

	want := defaults()
	want.ReviewServiceURL = "http://reviews:9000"
	want.RequestTimeout = 1500 * time.Millisecond
	want.SearchMaxResults = 5
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "client.yaml", "database_path: /tmp/b.db\nlog_level: debug\ncatalog_url: http://books.local/volumes\n")

	cfg, err := Load([]string{"-config", path})
	require.NoError(t, err)

	want := defaults()
	want.DatabasePath = "/tmp/b.db"
	want.LogLevel = "debug"
	want.CatalogURL = "http://books.local/volumes"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "client.json", `{"review_service_url":"http://file:1","database_path":"file.db","log_level":"warn"}`)
	t.Setenv("BOOKIFY_REVIEW_SERVICE_URL", "http://env:2")
	t.Setenv("BOOKIFY_DATABASE_PATH", "env.db")
	t.Setenv("BOOKIFY_REQUEST_TIMEOUT", "2s")

	cfg, err := Load([]string{"-c", path, "-d", "flag.db", "-t", "7"})
	require.NoError(t, err)

	assert.Equal(t, "http://env:2", cfg.ReviewServiceURL)
	assert.Equal(t, "flag.db", cfg.DatabasePath)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_TimeoutFlagOnlyWhenGiven(t *testing.T) {
	path := writeFile(t, "client.json", `{"request_timeout":"1500ms"}`)

	cfg, err := Load([]string{"-c", path, "-a", "http://x"})
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, "http://x", cfg.ReviewServiceURL)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load([]string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("BOOKIFY_SEARCH_MAX_RESULTS", "many")
		_, err := Load(nil)
		require.Error(t, err)
	})

	t.Run("bad flag value", func(t *testing.T) {
		_, err := Load([]string{"-t", "soon"})
		require.Error(t, err)
	})
}
