package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookify/internal/client/client"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for username, email and password and creates an account.
// Server refusals (e.g. a taken email) are shown with the server's own text.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Register(ctx, username, email, string(password)); err != nil {
		var se *client.ServerError
		if errors.As(err, &se) && !errors.Is(err, client.ErrUnauthorized) {
			a.println(se.Message)
			return err
		}
		return a.fail(ctx, err)
	}

	a.println("Account created. You can log in now.")
	return nil
}

// Login prompts for email and password and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		return a.fail(ctx, err)
	}
	a.reviews.Cancel()

	a.println(fmt.Sprintf("Logged in as %s.", user.Username))
	if a.view == viewBook {
		a.printReviews()
	}
	return nil
}

// Logout ends the session. Views that only make sense while logged in are
// closed.
func (a *App) Logout(ctx context.Context) error {
	a.reviews.Cancel()
	err := a.authService.Logout(ctx)
	if a.view == viewMine {
		a.view = viewHome
	}
	if err != nil {
		a.logger.Warn(ctx, "logout could not clear stored credential", "error", err)
	}
	a.println("Logged out.")
	return err
}
