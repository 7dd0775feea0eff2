// Package server wires the reference review service: storage backend,
// services and the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bookify/internal/logging"
	"github.com/dmitrijs2005/bookify/internal/server/config"
	"github.com/dmitrijs2005/bookify/internal/server/httpapi"
	"github.com/dmitrijs2005/bookify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookify/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
}

// openPostgres is a seam for tests.
var openPostgres = repomanager.OpenPostgres

// NewApp selects PostgreSQL when a DSN is configured and in-memory storage
// otherwise, applying migrations for the former.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)
	if cfg.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, reviews are kept in memory")
		rm = repomanager.NewMemoryRepositoryManager()
	} else {
		var err error
		db, err = openPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	us := services.NewUserService(db, rm, cfg)
	rs := services.NewReviewService(db, rm)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		http:   httpapi.NewServer(cfg.Address, logger, us, rs),
	}, nil
}

// Run serves until ctx is cancelled and then releases the database.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")
	defer app.close(ctx)

	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
		return err
	}
	return nil
}

func (app *App) close(ctx context.Context) {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
