// Package reviews persists book reviews for the reference review service.
package reviews

import (
	"context"

	"github.com/dmitrijs2005/bookify/internal/server/models"
)

// Repository stores reviews. List methods return reviews newest first and
// never return a nil slice.
//
// Update and Delete only touch a row owned by userID. When nothing matched
// they return common.ErrorNotFound; callers that need to tell "missing" from
// "someone else's" follow up with GetByID.
type Repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	ListByBook(ctx context.Context, bookID string) ([]models.Review, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	Update(ctx context.Context, id, userID, text string, rating *int) error
	Delete(ctx context.Context, id, userID string) error
}
