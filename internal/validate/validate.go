// Package validate implements the local, pre-network input rules shared by
// the client and the reference review service. A failed rule is reported as
// *Error and must never result in a request.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/bookify/internal/common"
)

// Error describes a rejected input field. Message is meant for end users.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func fail(field, msg string) *Error {
	return &Error{Field: field, Message: msg}
}

// HasLetterRun reports whether s contains at least n consecutive letters.
func HasLetterRun(s string, n int) bool {
	run := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			run = 0
			continue
		}
		run++
		if run >= n {
			return true
		}
	}
	return false
}

// ReviewText accepts text that, after trimming, contains at least three
// consecutive letters.
func ReviewText(text string) error {
	if !HasLetterRun(strings.TrimSpace(text), common.MinReviewLetters) {
		return fail("review", fmt.Sprintf("Review must contain at least %d letters in a row.", common.MinReviewLetters))
	}
	return nil
}

// IsValidReview is the boolean form of ReviewText.
func IsValidReview(text string) bool {
	return ReviewText(text) == nil
}

func Rating(rating int) error {
	if rating < common.MinRating || rating > common.MaxRating {
		return fail("rating", fmt.Sprintf("Rating must be between %d and %d.", common.MinRating, common.MaxRating))
	}
	return nil
}

// Review checks text and rating together, text first.
func Review(text string, rating int) error {
	if err := ReviewText(text); err != nil {
		return err
	}
	return Rating(rating)
}

func SearchQuery(query string) error {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < common.MinSearchQueryLen {
		return fail("query", fmt.Sprintf("Search text must be at least %d characters.", common.MinSearchQueryLen))
	}
	return nil
}

func Registration(username, email, password string) error {
	if utf8.RuneCountInString(username) < common.MinUsernameLen {
		return fail("username", fmt.Sprintf("Username must be %d characters or more.", common.MinUsernameLen))
	}
	if !strings.Contains(email, "@") {
		return fail("email", "Provide a valid email.")
	}
	if utf8.RuneCountInString(password) < common.MinPasswordLen {
		return fail("password", fmt.Sprintf("Password must be at least %d characters.", common.MinPasswordLen))
	}
	return nil
}

func LoginInput(email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return fail("credentials", "You need to enter a valid email and password.")
	}
	return nil
}
