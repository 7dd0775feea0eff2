package configfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookify/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string         `json:"name" yaml:"name"`
	Timeout timex.Duration `json:"timeout" yaml:"timeout"`
}

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"json", "c.json", `{"name":"svc","timeout":"3s"}`},
		{"yaml", "c.yaml", "name: svc\ntimeout: 3s\n"},
		{"yml upper", "c.YML", "name: svc\ntimeout: 3s\n"},
		{"no extension is json", "config", `{"name":"svc","timeout":"3s"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s sample
			require.NoError(t, Load(write(t, tt.file, tt.body), &s))
			assert.Equal(t, "svc", s.Name)
			assert.Equal(t, 3*time.Second, s.Timeout.Duration)
		})
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	s := sample{Name: "keep"}
	require.NoError(t, Load("", &s))
	assert.Equal(t, "keep", s.Name)
}

func TestLoad_Errors(t *testing.T) {
	var s sample
	require.Error(t, Load(filepath.Join(t.TempDir(), "missing.json"), &s))
	require.Error(t, Load(write(t, "bad.json", `{"name":`), &s))
	require.Error(t, Load(write(t, "bad.yaml", "name: [unclosed"), &s))
}
