package client

import (
	"context"

	"github.com/dmitrijs2005/bookify/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, email, password string) (string, models.User, error)
	Register(ctx context.Context, username, email, password string) error
	Validate(ctx context.Context, token string) (*models.User, error)

	ListReviewsForBook(ctx context.Context, bookID string) ([]models.Review, error)
	ListReviewsForUser(ctx context.Context, token string) ([]models.Review, error)
	CreateReview(ctx context.Context, token, bookID, text string, rating int) (models.Review, error)
	UpdateReview(ctx context.Context, token, id, text string, rating *int) error
	DeleteReview(ctx context.Context, token, id string) error
}
