// Package cardtype implements the card type catalog repository using PostgreSQL.
package cardtype

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres"
	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// Repo provides read access to the card type catalog.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new card type repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listSQL = `
SELECT code, name, description, created_at, updated_at
FROM card_types
ORDER BY code`

// List returns every card type, ordered by code.
func (r *Repo) List(ctx context.Context) ([]domain.CardType, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list card types: %w", err)
	}
	defer rows.Close()

	types := []domain.CardType{}
	for rows.Next() {
		var ct domain.CardType
		if err := rows.Scan(&ct.Code, &ct.Name, &ct.Description, &ct.CreatedAt, &ct.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan card type: %w", err)
		}
		types = append(types, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate card types: %w", err)
	}

	return types, nil
}

const listCodesSQL = `SELECT code FROM card_types ORDER BY code`

// ListCodes returns every card type code, ordered.
func (r *Repo) ListCodes(ctx context.Context) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listCodesSQL)
	if err != nil {
		return nil, fmt.Errorf("list card type codes: %w", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan card type code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate card type codes: %w", err)
	}

	return codes, nil
}
