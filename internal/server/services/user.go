// Package services contains the review service's business logic. Handlers
// call services; services call repositories obtained from the
// RepositoryManager.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookify/internal/common"
	"github.com/dmitrijs2005/bookify/internal/server/auth"
	"github.com/dmitrijs2005/bookify/internal/server/config"
	"github.com/dmitrijs2005/bookify/internal/server/models"
	"github.com/dmitrijs2005/bookify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookify/internal/validate"
)

var (
	ErrEmailTaken    = fmt.Errorf("email: %w", common.ErrorAlreadyExists)
	ErrUsernameTaken = fmt.Errorf("username: %w", common.ErrorAlreadyExists)
)

// UserService registers accounts, checks passwords and resolves bearer
// tokens back to accounts.
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
	}
}

// normalizeEmail makes addresses compare case-insensitively.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. Input problems are *validate.Error; a taken
// email or username is ErrEmailTaken or ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if err := validate.Registration(username, email, password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	if err := s.ensureFree(ctx, repo.GetByEmail, email, ErrEmailTaken); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, repo.GetByUsername, username, ErrUsernameTaken); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	u, err := repo.Create(ctx, &models.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// lost a race with a concurrent registration
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

func (s *UserService) ensureFree(ctx context.Context, get func(context.Context, string) (*models.User, error), key string, taken error) error {
	_, err := get(ctx, key)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		return fmt.Errorf("error looking up user: %w", err)
	}
}

// Login verifies email and password and issues a bearer token. Unknown
// email and wrong password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if err := validate.LoginInput(email, password); err != nil {
		return "", nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", nil, common.ErrorInternal
	}
	return token, user, nil
}

// Identify resolves a bearer token to its account. A token for an account
// that no longer exists is common.ErrInvalidToken.
func (s *UserService) Identify(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}
