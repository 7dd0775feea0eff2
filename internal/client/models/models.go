// Package models defines the client-side data models of the Bookify CLI.
// JSON tags follow the review service and catalog wire formats.
package models

import (
	"strings"
	"time"
)

// User identifies an account on the review service.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Review is the client's read-through copy of a server-owned review.
type Review struct {
	ID        string    `json:"_id"`
	BookID    string    `json:"bookId"`
	Author    string    `json:"username"`
	Text      string    `json:"reviewText"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// Book is the subset of catalog metadata the application shows.
type Book struct {
	ID            string
	Title         string
	Authors       []string
	Description   string
	ThumbnailURL  string
	PublishedDate string
	PageCount     int
}

// AuthorLine joins the book's authors for display.
func (b Book) AuthorLine() string {
	if len(b.Authors) == 0 {
		return "Unknown"
	}
	return strings.Join(b.Authors, ", ")
}
