package users

import (
	"context"

	"github.com/dmitrijs2005/bookify/internal/server/models"
)

// Repository stores accounts. Lookups of a missing user return
// common.ErrorNotFound; a duplicate username or email on Create returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
