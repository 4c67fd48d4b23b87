// Package knowledge implements the knowledge catalog repository using PostgreSQL.
package knowledge

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres"
	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// Repo provides read access to the knowledge catalog.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new knowledge repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listSQL = `
SELECT code, name, description, metadata, created_at, updated_at
FROM knowledge
ORDER BY code`

// List returns every knowledge item, ordered by code.
func (r *Repo) List(ctx context.Context) ([]domain.Knowledge, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list knowledge: %w", err)
	}
	defer rows.Close()

	items := []domain.Knowledge{}
	for rows.Next() {
		var item domain.Knowledge
		if err := rows.Scan(&item.Code, &item.Name, &item.Description,
			&item.Metadata, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan knowledge: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knowledge: %w", err)
	}

	return items, nil
}

const getByCodeSQL = `
SELECT code, name, description, metadata, created_at, updated_at
FROM knowledge
WHERE code = $1`

// GetByCode returns one knowledge item by its code.
func (r *Repo) GetByCode(ctx context.Context, code string) (domain.Knowledge, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var item domain.Knowledge
	err := querier.QueryRow(ctx, getByCodeSQL, code).Scan(&item.Code, &item.Name,
		&item.Description, &item.Metadata, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.Knowledge{}, postgres.MapError(err, "knowledge", code)
	}

	return item, nil
}

const listCodesSQL = `SELECT code FROM knowledge ORDER BY code`

// ListCodes returns every knowledge code, ordered.
func (r *Repo) ListCodes(ctx context.Context) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listCodesSQL)
	if err != nil {
		return nil, fmt.Errorf("list knowledge codes: %w", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan knowledge code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knowledge codes: %w", err)
	}

	return codes, nil
}
