package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/wordwiseapp/wordwise-backend/migrations"
)

// runMigrations applies all pending migrations from the embedded FS.
// It borrows a database/sql handle from the pgx pool for goose; closing
// the handle returns the connections without closing the pool.
func runMigrations(ctx context.Context, log *slog.Logger, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close() //nolint:errcheck

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, r := range results {
		log.InfoContext(ctx, "applied migration",
			slog.String("migration", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}

	return nil
}
