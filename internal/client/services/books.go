package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookify/internal/client/catalog"
	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/dmitrijs2005/bookify/internal/client/reviews"
	"github.com/dmitrijs2005/bookify/internal/validate"
	"golang.org/x/sync/errgroup"
)

// titleLookups bounds concurrent catalog calls made by Titles.
const titleLookups = 4

// Mounter is the part of reviews.Controller that Open drives.
type Mounter interface {
	Mount(ctx context.Context, scope reviews.Scope) error
}

// Page is a book details page. A nil Book means the catalog does not know
// the id (or could not be reached).
type Page struct {
	Book *models.Book
}

type BookService interface {
	Search(ctx context.Context, query string) ([]models.Book, error)
	Open(ctx context.Context, bookID string, ctrl Mounter) (Page, error)
	Titles(ctx context.Context, list []models.Review) map[string]models.Book
}

type bookService struct {
	catalog    catalog.Catalog
	maxResults int
}

func NewBookService(c catalog.Catalog, maxResults int) BookService {
	if maxResults <= 0 {
		maxResults = catalog.DefaultMaxResults
	}
	return &bookService{catalog: c, maxResults: maxResults}
}

// Search rejects queries shorter than three characters with a
// *validate.Error; otherwise it never fails.
func (s *bookService) Search(ctx context.Context, query string) ([]models.Book, error) {
	if err := validate.SearchQuery(query); err != nil {
		return nil, err
	}
	return s.catalog.Search(ctx, strings.TrimSpace(query), s.maxResults), nil
}

// Open loads the book and mounts its reviews on ctrl at the same time. The
// returned error is the review load failure only; a missing book is not an
// error.
func (s *bookService) Open(ctx context.Context, bookID string, ctrl Mounter) (Page, error) {
	var (
		page Page
		g    errgroup.Group
	)

	g.Go(func() error {
		page.Book = s.catalog.Get(ctx, bookID)
		return nil
	})
	g.Go(func() error {
		return ctrl.Mount(ctx, reviews.ForBook(bookID))
	})

	err := g.Wait()
	return page, err
}

// Titles resolves the books referenced by list, one lookup per distinct
// book id. Books the catalog cannot find are absent from the result.
func (s *bookService) Titles(ctx context.Context, list []models.Review) map[string]models.Book {
	out := make(map[string]models.Book)
	seen := make(map[string]struct{})

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(titleLookups)

	for _, r := range list {
		if r.BookID == "" {
			continue
		}
		if _, ok := seen[r.BookID]; ok {
			continue
		}
		seen[r.BookID] = struct{}{}

		id := r.BookID
		g.Go(func() error {
			b := s.catalog.Get(ctx, id)
			if b == nil {
				return nil
			}
			mu.Lock()
			out[id] = *b
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
