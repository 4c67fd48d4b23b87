// Package auth implements account registration and password login.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// accountRepo defines the account repository interface needed by auth service.
type accountRepo interface {
	GetByID(ctx context.Context, accountID int64) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
}

// tokenIssuer defines the JWT token management interface needed by auth service.
type tokenIssuer interface {
	GenerateAccessToken(accountID int64) (string, error)
	AccessTTL() time.Duration
}

// Service implements auth operations.
type Service struct {
	log      *slog.Logger
	accounts accountRepo
	jwt      tokenIssuer
	hashCost int
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, accounts accountRepo, jwt tokenIssuer, hashCost int) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		accounts: accounts,
		jwt:      jwt,
		hashCost: hashCost,
	}
}

// GetAccount returns the account profile for an authenticated account ID.
func (s *Service) GetAccount(ctx context.Context, accountID int64) (domain.Account, error) {
	return s.accounts.GetByID(ctx, accountID)
}
