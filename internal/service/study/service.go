// Package study implements the spaced-repetition study flow: review
// submission, card listings, statistics, and card initialization.
package study

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
	"github.com/wordwiseapp/wordwise-backend/internal/service/srs"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type cardRepo interface {
	GetByID(ctx context.Context, cardID int64) (domain.Card, error)
	GetByTriple(ctx context.Context, accountID int64, knowledgeCode, cardTypeCode string) (domain.Card, error)
	FindFiltered(ctx context.Context, filter domain.CardFilter) ([]domain.Card, int64, error)
	Save(ctx context.Context, card domain.Card) (domain.Card, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Card, error)
}

type reviewHistoryRepo interface {
	Create(ctx context.Context, entry domain.ReviewHistory) (domain.ReviewHistory, error)
	ListByCardID(ctx context.Context, cardID int64, limit, offset int) ([]domain.ReviewHistory, int64, error)
}

type knowledgeRepo interface {
	ListCodes(ctx context.Context) ([]string, error)
}

type cardTypeRepo interface {
	ListCodes(ctx context.Context) ([]string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the study business logic. A single review submission is
// one sequential pipeline; the service holds no mutable state between calls,
// so it tolerates any caller concurrency model. Serializing concurrent
// reviews of the same card is the storage layer's obligation (row-level
// locking or equivalent): Save on one card row must be atomic.
type Service struct {
	cards     cardRepo
	history   reviewHistoryRepo
	knowledge knowledgeRepo
	cardTypes cardTypeRepo
	alg       *srs.Algorithm
	clock     clockwork.Clock
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new study service. A nil clock falls back to the
// real clock; a nil tx manager runs multi-write operations without a
// transaction (in-memory backends have no transaction concept).
func NewService(
	log *slog.Logger,
	cards cardRepo,
	history reviewHistoryRepo,
	knowledge knowledgeRepo,
	cardTypes cardTypeRepo,
	alg *srs.Algorithm,
	clock clockwork.Clock,
	tx txManager,
) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		cards:     cards,
		history:   history,
		knowledge: knowledge,
		cardTypes: cardTypes,
		alg:       alg,
		clock:     clock,
		tx:        tx,
		log:       log.With("service", "study"),
	}
}

func (s *Service) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.RunInTx(ctx, fn)
}
