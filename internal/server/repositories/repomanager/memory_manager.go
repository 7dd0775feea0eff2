package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookify/internal/dbx"
	"github.com/dmitrijs2005/bookify/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/bookify/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. The db
// arguments are ignored and may be nil; there are no transactions, so
// callers must not rely on rollback.
type MemoryRepositoryManager struct {
	users   *users.MemoryRepository
	reviews *reviews.MemoryRepository
}

func NewMemoryRepositoryManager() RepositoryManager {
	return &MemoryRepositoryManager{
		users:   users.NewMemoryRepository(),
		reviews: reviews.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Reviews(dbx.DBTX) reviews.Repository {
	return m.reviews
}
