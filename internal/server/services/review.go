package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookify/internal/common"
	"github.com/dmitrijs2005/bookify/internal/server/models"
	"github.com/dmitrijs2005/bookify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookify/internal/validate"
)

// ReviewService lists and mutates reviews. Mutations are authorized by the
// caller's user id, never by username.
type ReviewService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewReviewService(db *sql.DB, m repomanager.RepositoryManager) *ReviewService {
	return &ReviewService{db: db, repomanager: m}
}

// ListByBook returns common.ErrorNotFound when the book has no reviews.
func (s *ReviewService) ListByBook(ctx context.Context, bookID string) ([]models.Review, error) {
	items, err := s.repomanager.Reviews(s.db).ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	if len(items) == 0 {
		return nil, common.ErrorNotFound
	}
	return items, nil
}

func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	items, err := s.repomanager.Reviews(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	return items, nil
}

// Create stores a review authored by author. Text is stored trimmed.
func (s *ReviewService) Create(ctx context.Context, author *models.User, bookID, text string, rating int) (*models.Review, error) {
	bookID = strings.TrimSpace(bookID)
	if bookID == "" {
		return nil, &validate.Error{Field: "bookId", Message: "A book is required."}
	}
	if err := validate.Review(text, rating); err != nil {
		return nil, err
	}

	rv, err := s.repomanager.Reviews(s.db).Create(ctx, &models.Review{
		BookID:   bookID,
		UserID:   author.ID,
		Username: author.Username,
		Text:     strings.TrimSpace(text),
		Rating:   rating,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating review: %w", err)
	}
	return rv, nil
}

// Update changes text and, when given, rating. It returns
// common.ErrorForbidden when the review belongs to someone else and
// common.ErrorNotFound when it does not exist.
func (s *ReviewService) Update(ctx context.Context, userID, id, text string, rating *int) error {
	if err := validate.ReviewText(text); err != nil {
		return err
	}
	if rating != nil {
		if err := validate.Rating(*rating); err != nil {
			return err
		}
	}

	repo := s.repomanager.Reviews(s.db)
	err := repo.Update(ctx, id, userID, strings.TrimSpace(text), rating)
	return s.explainMiss(ctx, id, err)
}

func (s *ReviewService) Delete(ctx context.Context, userID, id string) error {
	err := s.repomanager.Reviews(s.db).Delete(ctx, id, userID)
	return s.explainMiss(ctx, id, err)
}

// explainMiss turns an owner-scoped miss into ErrorForbidden when the
// review exists.
func (s *ReviewService) explainMiss(ctx context.Context, id string, err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error changing review: %w", err)
	}

	_, getErr := s.repomanager.Reviews(s.db).GetByID(ctx, id)
	switch {
	case getErr == nil:
		return common.ErrorForbidden
	case errors.Is(getErr, common.ErrorNotFound):
		return common.ErrorNotFound
	default:
		return fmt.Errorf("error looking up review: %w", getErr)
	}
}
