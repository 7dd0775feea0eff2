package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookify/internal/common"
	"github.com/dmitrijs2005/bookify/internal/dbx"
	"github.com/dmitrijs2005/bookify/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements review storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, book_id, user_id, username, review_text, rating, created_at FROM reviews`

func (r *PostgresRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO reviews (id, book_id, user_id, username, review_text, rating)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		review.ID, review.BookID, review.UserID, review.Username, review.Text, review.Rating).
		Scan(&review.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return review, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	if _, err := uuid.Parse(id); err != nil {
		// the id column is UUID; anything else cannot match
		return nil, common.ErrorNotFound
	}

	var item models.Review
	err := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id).
		Scan(&item.ID, &item.BookID, &item.UserID, &item.Username, &item.Text, &item.Rating, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

func (r *PostgresRepository) ListByBook(ctx context.Context, bookID string) ([]models.Review, error) {
	return r.list(ctx, selectColumns+` WHERE book_id = $1 ORDER BY created_at DESC`, bookID)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	return r.list(ctx, selectColumns+` WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg string) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to select reviews: %w", err)
	}
	defer rows.Close()

	result := []models.Review{}
	for rows.Next() {
		var item models.Review
		if err := rows.Scan(&item.ID, &item.BookID, &item.UserID, &item.Username,
			&item.Text, &item.Rating, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update replaces the text and, when rating is non-nil, the rating.
func (r *PostgresRepository) Update(ctx context.Context, id, userID, text string, rating *int) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	query :=
		`UPDATE reviews SET review_text = $1, rating = COALESCE($2, rating)
		 WHERE id = $3 AND user_id = $4`

	var ratingArg any
	if rating != nil {
		ratingArg = *rating
	}

	res, err := r.db.ExecContext(ctx, query, text, ratingArg, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
