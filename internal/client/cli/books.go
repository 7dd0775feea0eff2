package cli

import (
	"context"
	"strconv"
)

// Search looks up books in the catalog. Without an argument the query is
// prompted for.
func (a *App) Search(ctx context.Context, query string) error {
	if query == "" {
		q, err := getSimpleText(a.reader, "Search for a book", a.out)
		if err != nil {
			return err
		}
		query = q
	}

	books, err := a.bookService.Search(ctx, query)
	if err != nil {
		return a.fail(ctx, err)
	}

	a.results = books
	if len(books) == 0 {
		a.println("No books found.")
		return nil
	}
	a.printBooks(books)
	a.println("Open one with 'book <n>'.")
	return nil
}

// Book opens a book page by search result number or catalog id.
func (a *App) Book(ctx context.Context, ref string) error {
	id := a.resolveBook(ref)
	if id == "" {
		a.println("Usage: book <number from search results | book id>")
		return nil
	}

	page, err := a.bookService.Open(ctx, id, a.reviews)
	if page.Book == nil {
		a.view = viewHome
		a.book = nil
		a.println("No book was found.")
		return nil
	}

	a.view = viewBook
	a.book = page.Book
	a.printBook(*page.Book)
	if err != nil {
		a.println("Reviews could not be loaded: " + describe(err))
	}
	a.printReviews()
	return err
}

// Reviews reloads and shows the reviews of the open view. The last list is
// kept when the reload fails.
func (a *App) Reviews(ctx context.Context) error {
	if a.view == viewHome {
		a.println("Open a book first (book <n|id>) or list yours with 'mine'.")
		return nil
	}
	err := a.reviews.Refresh(ctx)
	if err != nil {
		a.println("Could not reload reviews: " + describe(err))
	}
	if a.view == viewMine {
		a.titles = a.bookService.Titles(ctx, a.reviews.Reviews())
	}
	a.printReviews()
	return err
}

func (a *App) resolveBook(ref string) string {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(a.results) {
		return a.results[n-1].ID
	}
	return ref
}
