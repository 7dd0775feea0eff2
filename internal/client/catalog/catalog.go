// Package catalog looks up book metadata in the public Google Books API.
//
// The catalog is best effort: lookups never return errors to the caller.
// A failed search is an empty result and a failed detail lookup is "not
// found". Failures are logged.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/dmitrijs2005/bookify/internal/logging"
)

const (
	DefaultBaseURL    = "https://www.googleapis.com/books/v1/volumes"
	DefaultMaxResults = 20
	// maxResultsLimit is the largest page the volumes endpoint serves.
	maxResultsLimit = 40
	defaultTimeout  = 15 * time.Second
	maxBodyBytes    = 4 << 20
)

type Catalog interface {
	Search(ctx context.Context, query string, maxResults int) []models.Book
	Get(ctx context.Context, id string) *models.Book
}

type GoogleBooks struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     logging.Logger
}

type Option func(*GoogleBooks)

func WithBaseURL(u string) Option {
	return func(g *GoogleBooks) {
		if u != "" {
			g.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(g *GoogleBooks) { g.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(g *GoogleBooks) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(g *GoogleBooks) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGoogleBooks(opts ...Option) *GoogleBooks {
	g := &GoogleBooks{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "catalog")
	return g
}

type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		PublishedDate string   `json:"publishedDate"`
		PageCount     int      `json:"pageCount"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type volumeList struct {
	Items []volume `json:"items"`
}

func (v volume) book() models.Book {
	return models.Book{
		ID:            v.ID,
		Title:         v.VolumeInfo.Title,
		Authors:       v.VolumeInfo.Authors,
		Description:   v.VolumeInfo.Description,
		ThumbnailURL:  v.VolumeInfo.ImageLinks.Thumbnail,
		PublishedDate: v.VolumeInfo.PublishedDate,
		PageCount:     v.VolumeInfo.PageCount,
	}
}

// Search returns up to maxResults volumes matching query. It returns an
// empty, non-nil slice on any failure.
func (g *GoogleBooks) Search(ctx context.Context, query string, maxResults int) []models.Book {
	books := []models.Book{}

	query = strings.TrimSpace(query)
	if query == "" {
		return books
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > maxResultsLimit {
		maxResults = maxResultsLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))

	var out volumeList
	if err := g.getJSON(ctx, g.baseURL+"?"+params.Encode(), &out); err != nil {
		g.logger.Warn(ctx, "book search failed", "query", query, "error", err)
		return books
	}

	for _, v := range out.Items {
		if v.ID == "" {
			continue
		}
		books = append(books, v.book())
	}
	return books
}

// Get returns the volume with the given id, or nil when it cannot be
// fetched for any reason.
func (g *GoogleBooks) Get(ctx context.Context, id string) *models.Book {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	var v volume
	if err := g.getJSON(ctx, g.baseURL+"/"+url.PathEscape(id), &v); err != nil {
		g.logger.Warn(ctx, "book lookup failed", "book_id", id, "error", err)
		return nil
	}
	if v.ID == "" {
		return nil
	}
	b := v.book()
	return &b
}

func (g *GoogleBooks) getJSON(ctx context.Context, u string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out)
}
