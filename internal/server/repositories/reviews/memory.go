package reviews

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookify/internal/common"
	"github.com/dmitrijs2005/bookify/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Review
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]models.Review),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Create(_ context.Context, review *models.Review) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if _, ok := r.items[review.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	review.CreatedAt = r.now()
	r.items[review.ID] = *review
	return review, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &item, nil
}

func (r *MemoryRepository) ListByBook(_ context.Context, bookID string) ([]models.Review, error) {
	return r.filter(func(rv models.Review) bool { return rv.BookID == bookID }), nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]models.Review, error) {
	return r.filter(func(rv models.Review) bool { return rv.UserID == userID }), nil
}

func (r *MemoryRepository) filter(keep func(models.Review) bool) []models.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.Review{}
	for _, item := range r.items {
		if keep(item) {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (r *MemoryRepository) Update(_ context.Context, id, userID, text string, rating *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return common.ErrorNotFound
	}
	item.Text = text
	if rating != nil {
		item.Rating = *rating
	}
	r.items[id] = item
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}
