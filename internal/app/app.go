// Package app wires configuration, storage, services, and transport
// together and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres"
	accountrepo "github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres/account"
	cardrepo "github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres/card"
	cardtyperepo "github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres/cardtype"
	knowledgerepo "github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres/knowledge"
	historyrepo "github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres/reviewhistory"
	"github.com/wordwiseapp/wordwise-backend/internal/auth"
	"github.com/wordwiseapp/wordwise-backend/internal/config"
	authsvc "github.com/wordwiseapp/wordwise-backend/internal/service/auth"
	"github.com/wordwiseapp/wordwise-backend/internal/service/catalog"
	"github.com/wordwiseapp/wordwise-backend/internal/service/srs"
	"github.com/wordwiseapp/wordwise-backend/internal/service/study"
	"github.com/wordwiseapp/wordwise-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, runs migrations, builds the service graph, and serves HTTP
// until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := runMigrations(ctx, logger, pool); err != nil {
			return err
		}
	}

	cards := cardrepo.New(pool)
	history := historyrepo.New(pool)
	knowledge := knowledgerepo.New(pool)
	cardTypes := cardtyperepo.New(pool)
	accounts := accountrepo.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	algorithm, err := srs.New(srs.Config{
		DefaultEaseFactor: cfg.SRS.DefaultEaseFactor,
		MinEaseFactor:     cfg.SRS.MinEaseFactor,
	})
	if err != nil {
		return err
	}

	txManager := postgres.NewTxManager(pool)

	studyService := study.NewService(logger, cards, history, knowledge, cardTypes, algorithm, nil, txManager)
	authService := authsvc.NewService(logger, accounts, jwtManager, cfg.Auth.PasswordHashCost)
	catalogService := catalog.NewService(logger, knowledge, cardTypes)

	router := rest.NewRouter(rest.RouterDeps{
		Auth:           authService,
		Study:          studyService,
		Catalog:        catalogService,
		DB:             pool,
		TokenValidator: jwtManager,
		Logger:         logger,
		CORS:           cfg.CORS,
		Version:        BuildVersion(),
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
