// Package account implements the account repository using PostgreSQL.
package account

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres"
	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new account repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const accountColumns = `id, email, password_hash, display_name, created_at, updated_at`

const getByIDSQL = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1`

// GetByID returns an account by primary key.
func (r *Repo) GetByID(ctx context.Context, accountID int64) (domain.Account, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	account, err := scanAccount(querier.QueryRow(ctx, getByIDSQL, accountID))
	if err != nil {
		return domain.Account{}, postgres.MapError(err, "account", accountID)
	}

	return account, nil
}

const getByEmailSQL = `
SELECT ` + accountColumns + `
FROM accounts
WHERE email = $1`

// GetByEmail returns an account by its unique email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	account, err := scanAccount(querier.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return domain.Account{}, postgres.MapError(err, "account", email)
	}

	return account, nil
}

const insertSQL = `
INSERT INTO accounts (email, password_hash, display_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + accountColumns

// Create inserts a new account. A duplicate email results in
// domain.ErrAlreadyExists via the unique constraint.
func (r *Repo) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	saved, err := scanAccount(querier.QueryRow(ctx, insertSQL,
		account.Email, account.PasswordHash, account.DisplayName,
		account.CreatedAt, account.UpdatedAt))
	if err != nil {
		return domain.Account{}, postgres.MapError(err, "account", account.Email)
	}

	return saved, nil
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, err
	}
	return a, nil
}
