// Package reviewhistory implements the review history repository using PostgreSQL.
package reviewhistory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres"
	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// Repo provides review history persistence backed by PostgreSQL.
// History rows are append-only; there is no update or delete path.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO review_history (card_id, quality, reviewed_at)
VALUES ($1, $2, $3)
RETURNING id, card_id, quality, reviewed_at`

// Create appends an immutable history entry.
func (r *Repo) Create(ctx context.Context, entry domain.ReviewHistory) (domain.ReviewHistory, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var saved domain.ReviewHistory
	err := querier.QueryRow(ctx, insertSQL, entry.CardID, entry.Quality, entry.ReviewedAt).
		Scan(&saved.ID, &saved.CardID, &saved.Quality, &saved.ReviewedAt)
	if err != nil {
		return domain.ReviewHistory{}, postgres.MapError(err, "review history for card", entry.CardID)
	}

	return saved, nil
}

const listSQL = `
SELECT id, card_id, quality, reviewed_at
FROM review_history
WHERE card_id = $1
ORDER BY reviewed_at DESC, id DESC
LIMIT $2 OFFSET $3`

const countSQL = `
SELECT count(*) FROM review_history WHERE card_id = $1`

// ListByCardID returns one page of a card's history, most recent first,
// plus the total entry count for that card. A non-positive limit disables it.
func (r *Repo) ListByCardID(ctx context.Context, cardID int64, limit, offset int) ([]domain.ReviewHistory, int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var total int64
	if err := querier.QueryRow(ctx, countSQL, cardID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count review history: %w", err)
	}

	var sqlLimit any
	if limit > 0 {
		sqlLimit = limit
	}

	rows, err := querier.Query(ctx, listSQL, cardID, sqlLimit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list review history: %w", err)
	}
	defer rows.Close()

	entries := []domain.ReviewHistory{}
	for rows.Next() {
		var entry domain.ReviewHistory
		if err := rows.Scan(&entry.ID, &entry.CardID, &entry.Quality, &entry.ReviewedAt); err != nil {
			return nil, 0, fmt.Errorf("scan review history: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review history: %w", err)
	}

	return entries, total, nil
}
