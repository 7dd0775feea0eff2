package cli

import (
	"strings"

	"github.com/dmitrijs2005/bookify/internal/client/catalog"
	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/dmitrijs2005/bookify/internal/common"
)

func (a *App) printBooks(books []models.Book) {
	for i, b := range books {
		line := b.Title + " by " + b.AuthorLine()
		if b.PublishedDate != "" {
			line += " (" + b.PublishedDate + ")"
		}
		a.printf("%2d. %s\n", i+1, line)
	}
}

func (a *App) printBook(b models.Book) {
	a.println()
	a.println(b.Title)
	a.println("Author: " + b.AuthorLine())
	if b.PublishedDate != "" {
		a.println("Published: " + b.PublishedDate)
	}
	if b.PageCount > 0 {
		a.printf("Pages: %d\n", b.PageCount)
	}
	if b.ThumbnailURL != "" {
		a.println("Cover: " + b.ThumbnailURL)
	}
	a.println()
	if desc := catalog.CleanDescription(b.Description); desc != "" {
		a.println(desc)
	} else {
		a.println("No description available.")
	}
	a.println()
}

func (a *App) printReviews() {
	items := a.reviews.Items()
	if len(items) == 0 {
		if a.view == viewMine {
			a.println("You have not written any reviews yet.")
		} else {
			a.println("No reviews yet.")
		}
		return
	}

	a.println("Reviews:")
	for i, it := range items {
		r := it.Review
		header := stars(r.Rating) + " " + r.Author
		if a.view == viewMine {
			title := r.BookID
			if b, ok := a.titles[r.BookID]; ok && b.Title != "" {
				title = b.Title
			}
			header = title + " " + stars(r.Rating)
		}
		if !r.CreatedAt.IsZero() {
			header += " on " + r.CreatedAt.Format("2006-01-02")
		}
		if it.CanEdit {
			header += " [yours]"
		}
		if it.Editing {
			header += " [editing]"
		}
		a.printf("%2d. %s\n", i+1, header)
		a.println(indent(r.Text))
	}
}

func stars(n int) string {
	n = max(common.MinRating-1, min(n, common.MaxRating))
	return strings.Repeat("*", n) + strings.Repeat(".", common.MaxRating-n)
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}
