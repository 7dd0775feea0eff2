package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duneJSON = `{
	"id": "dune1",
	"volumeInfo": {
		"title": "Dune",
		"authors": ["Frank Herbert"],
		"description": "Spice <b>must</b> flow.",
		"publishedDate": "1965",
		"pageCount": 412,
		"imageLinks": {"thumbnail": "http://img/dune.jpg"}
	}
}`

func newCatalog(t *testing.T, h http.HandlerFunc) *GoogleBooks {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewGoogleBooks(WithBaseURL(ts.URL+"/volumes"), WithTimeout(time.Second))
}

func TestSearch(t *testing.T) {
	t.Run("maps volumes and sends query", func(t *testing.T) {
		var got url.Values
		var path string
		g := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Query()
			path = r.URL.Path
			_, _ = io.WriteString(w, `{"items":[`+duneJSON+`,{"volumeInfo":{"title":"no id"}}]}`)
		})

		books := g.Search(context.Background(), "  dune & co ", 0)

		require.Len(t, books, 1)
		assert.Equal(t, models.Book{
			ID:            "dune1",
			Title:         "Dune",
			Authors:       []string{"Frank Herbert"},
			Description:   "Spice <b>must</b> flow.",
			ThumbnailURL:  "http://img/dune.jpg",
			PublishedDate: "1965",
			PageCount:     412,
		}, books[0])
		assert.Equal(t, "/volumes", path)
		assert.Equal(t, "dune & co", got.Get("q"))
		assert.Equal(t, "20", got.Get("maxResults"))
	})

	t.Run("max results clamped", func(t *testing.T) {
		var got string
		g := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Query().Get("maxResults")
			_, _ = io.WriteString(w, `{}`)
		})

		books := g.Search(context.Background(), "dune", 100)
		assert.Equal(t, "40", got)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("server error is an empty result", func(t *testing.T) {
		g := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		books := g.Search(context.Background(), "dune", 5)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("bad json is an empty result", func(t *testing.T) {
		g := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"items":`)
		})

		assert.Empty(t, g.Search(context.Background(), "dune", 5))
	})

	t.Run("blank query skips the network", func(t *testing.T) {
		called := false
		g := newCatalog(t, func(w http.ResponseWriter, r *http.Request) { called = true })

		assert.Empty(t, g.Search(context.Background(), "   ", 5))
		assert.False(t, called)
	})
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var path string
		g := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_, _ = io.WriteString(w, duneJSON)
		})

		b := g.Get(context.Background(), "dune1")
		require.NotNil(t, b)
		assert.Equal(t, "Dune", b.Title)
		assert.Equal(t, "/volumes/dune1", path)
	})

	t.Run("404 is nil", func(t *testing.T) {
		g := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		assert.Nil(t, g.Get(context.Background(), "missing"))
	})

	t.Run("unreachable is nil", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		base := ts.URL
		ts.Close()

		g := NewGoogleBooks(WithBaseURL(base))
		assert.Nil(t, g.Get(context.Background(), "dune1"))
	})

	t.Run("timeout is nil", func(t *testing.T) {
		release := make(chan struct{})
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(func() {
			close(release)
			ts.Close()
		})

		g := NewGoogleBooks(WithBaseURL(ts.URL), WithTimeout(50*time.Millisecond))
		assert.Nil(t, g.Get(context.Background(), "dune1"))
	})
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "A book.", "A book."},
		{"br variants", "one<br>two<br/>three<br />four", "one\ntwo\nthree\nfour"},
		{"tags stripped", "<p>Spice <b>must</b> flow.</p>", "Spice must flow."},
		{"entities decoded", "Tom &amp; Jerry &quot;quoted&quot; &#39;x&#39;", `Tom & Jerry "quoted" 'x'`},
		{"blank runs collapse", "<p>one</p><br><br><br><br>two", "one\n\ntwo"},
		{"trimmed", "<br>  middle  <br>", "middle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.in))
		})
	}
}
