// Package repomanager selects the storage backend of the review service and
// hands out repositories bound to a connection or transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookify/internal/dbx"
	"github.com/dmitrijs2005/bookify/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/bookify/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Reviews(db dbx.DBTX) reviews.Repository
}
