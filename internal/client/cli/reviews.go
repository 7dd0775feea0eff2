package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookify/internal/client/reviews"
)

// Review prompts for text and rating and posts a review on the open book.
func (a *App) Review(ctx context.Context) error {
	if a.view != viewBook || a.book == nil {
		a.println("Open a book first (book <n|id>).")
		return nil
	}

	text, err := getMultiline(a.reader, "Write your review", a.out)
	if err != nil {
		return err
	}
	rating, err := a.promptRating("Rating (1-5)", 0)
	if err != nil {
		return err
	}

	if err := a.reviews.Submit(ctx, text, rating); err != nil {
		return a.fail(ctx, err)
	}
	a.println("Review saved.")
	a.printReviews()
	return nil
}

// Edit opens an inline edit of one of your reviews. The change is stored
// with 'save' or dropped with 'cancel'.
func (a *App) Edit(ctx context.Context, ref string) error {
	id := a.resolveReview(ref)
	if id == "" {
		a.println("Usage: edit <n|review id>")
		return nil
	}
	if err := a.reviews.BeginEdit(id); err != nil {
		return a.fail(ctx, err)
	}

	st, _ := a.reviews.Editing()
	a.println("Current text:")
	a.println(indent(st.Text))

	text, err := getMultiline(a.reader, "New text (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		text = st.Text
	}
	rating, err := a.promptRating(fmt.Sprintf("New rating 1-5 (empty keeps %d)", st.Rating), st.Rating)
	if err != nil {
		return err
	}

	if err := a.reviews.SetDraft(text, rating); err != nil {
		return a.fail(ctx, err)
	}
	a.println("Type 'save' to store your changes or 'cancel' to discard them.")
	return nil
}

func (a *App) Save(ctx context.Context) error {
	if err := a.reviews.Save(ctx); err != nil {
		return a.fail(ctx, err)
	}
	a.println("Review updated.")
	a.refreshTitles(ctx)
	a.printReviews()
	return nil
}

func (a *App) Cancel(ctx context.Context) error {
	if _, editing := a.reviews.Editing(); !editing {
		a.println("Nothing to cancel.")
		return nil
	}
	a.reviews.Cancel()
	a.println("Edit cancelled.")
	a.printReviews()
	return nil
}

// Delete removes one of your reviews after confirmation.
func (a *App) Delete(ctx context.Context, ref string) error {
	id := a.resolveReview(ref)
	if id == "" {
		a.println("Usage: delete <n|review id>")
		return nil
	}

	answer, err := getSimpleText(a.reader, "Delete this review? (y/N)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		a.println("Kept.")
		return nil
	}

	if err := a.reviews.Delete(ctx, id); err != nil {
		return a.fail(ctx, err)
	}
	a.println("Review deleted.")
	a.refreshTitles(ctx)
	a.printReviews()
	return nil
}

// Mine lists every review written by the logged-in user.
func (a *App) Mine(ctx context.Context) error {
	a.view = viewMine
	a.book = nil
	err := a.reviews.Mount(ctx, reviews.ForUser())
	if err != nil {
		_ = a.fail(ctx, err)
	}
	a.titles = a.bookService.Titles(ctx, a.reviews.Reviews())
	a.printReviews()
	return err
}

func (a *App) refreshTitles(ctx context.Context) {
	if a.view == viewMine {
		a.titles = a.bookService.Titles(ctx, a.reviews.Reviews())
	}
}

// promptRating reads a rating. Empty input yields def; anything that is not
// a number yields 0, which validation rejects.
func (a *App) promptRating(prompt string, def int) (int, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (a *App) resolveReview(ref string) string {
	items := a.reviews.Items()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(items) {
		return items[n-1].Review.ID
	}
	return ref
}
