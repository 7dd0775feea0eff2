package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bookify/internal/client/client"
	"github.com/dmitrijs2005/bookify/internal/client/reviews"
	"github.com/dmitrijs2005/bookify/internal/client/services"
	"github.com/dmitrijs2005/bookify/internal/validate"
)

// describe turns err into a message for the user. Validation and
// registration messages are shown as they are; everything else gets a
// generic sentence.
func describe(err error) string {
	var (
		ve *validate.Error
		se *client.ServerError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, services.ErrInvalidLogin):
		return "Invalid email or password."
	case errors.Is(err, reviews.ErrRefresh):
		return "Your change was saved, but the list could not be reloaded. Try 'reviews' again."
	case errors.Is(err, reviews.ErrNotLoggedIn), errors.Is(err, client.ErrUnauthorized):
		return "You need to be logged in to do that."
	case errors.Is(err, reviews.ErrStale):
		return "The list is out of date. Run 'reviews' before editing."
	case errors.Is(err, reviews.ErrNotOwner):
		return "You can only change your own reviews."
	case errors.Is(err, reviews.ErrNotFound):
		return "No such review in the current list."
	case errors.Is(err, reviews.ErrNotEditing):
		return "You are not editing a review. Use 'edit <n>' first."
	case errors.Is(err, reviews.ErrNoBook):
		return "Open a book first (book <n|id>)."
	case errors.Is(err, client.ErrUnavailable):
		return "The review service is not reachable. Try again later."
	case errors.As(err, &se):
		return "Something went wrong: " + se.Message
	default:
		return "Something went wrong."
	}
}

func (a *App) fail(ctx context.Context, err error) error {
	a.logger.Debug(ctx, "command failed", "error", err)
	a.println(describe(err))
	return err
}
