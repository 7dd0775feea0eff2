// Package services contains application services for the Bookify client.
// They sit between the REPL and the lower layers: input validation, the
// review service client, the session store and the catalog.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookify/internal/client/client"
	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/dmitrijs2005/bookify/internal/logging"
	"github.com/dmitrijs2005/bookify/internal/validate"
)

var ErrInvalidLogin = errors.New("invalid email or password")

// Session is the write side of the session store.
type Session interface {
	Login(ctx context.Context, token string, user models.User) error
	Logout(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate input, exchange credentials for a token, start a session.
//   - Register: validate input and create an account; the server's message is
//     returned verbatim on failure.
//   - Logout: end the session and forget the stored token.
//   - Ping: check that the review service is reachable.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session Session
	logger  logging.Logger
}

func NewAuthService(c client.Client, s Session, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{client: c, session: s, logger: logger.With("component", "auth")}
}

// Login returns a *validate.Error for blank input, an error matching
// client.ErrUnavailable when the service cannot be reached and
// ErrInvalidLogin for anything the service refuses.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := validate.LoginInput(email, password); err != nil {
		return models.User{}, err
	}

	token, user, err := a.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			return models.User{}, err
		}
		a.logger.Info(ctx, "login refused", "error", err)
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidLogin, err)
	}
	if user.Email == "" {
		user.Email = email
	}

	if err := a.session.Login(ctx, token, user); err != nil {
		return models.User{}, fmt.Errorf("start session: %w", err)
	}
	return user, nil
}

func (a *authService) Register(ctx context.Context, username, email, password string) error {
	if err := validate.Registration(username, email, password); err != nil {
		return err
	}
	if err := a.client.Register(ctx, username, email, password); err != nil {
		a.logger.Info(ctx, "registration refused", "username", username, "error", err)
		return err
	}
	a.logger.Info(ctx, "registered", "username", username)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
