package study

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
	"github.com/wordwiseapp/wordwise-backend/internal/service/srs"
)

// ---------------------------------------------------------------------------
// Hand-rolled mocks
// ---------------------------------------------------------------------------

type cardRepoMock struct {
	GetByIDFunc       func(ctx context.Context, cardID int64) (domain.Card, error)
	GetByTripleFunc   func(ctx context.Context, accountID int64, knowledgeCode, cardTypeCode string) (domain.Card, error)
	FindFilteredFunc  func(ctx context.Context, filter domain.CardFilter) ([]domain.Card, int64, error)
	SaveFunc          func(ctx context.Context, card domain.Card) (domain.Card, error)
	ListByAccountFunc func(ctx context.Context, accountID int64) ([]domain.Card, error)
}

func (m *cardRepoMock) GetByID(ctx context.Context, cardID int64) (domain.Card, error) {
	return m.GetByIDFunc(ctx, cardID)
}

func (m *cardRepoMock) GetByTriple(ctx context.Context, accountID int64, knowledgeCode, cardTypeCode string) (domain.Card, error) {
	return m.GetByTripleFunc(ctx, accountID, knowledgeCode, cardTypeCode)
}

func (m *cardRepoMock) FindFiltered(ctx context.Context, filter domain.CardFilter) ([]domain.Card, int64, error) {
	return m.FindFilteredFunc(ctx, filter)
}

func (m *cardRepoMock) Save(ctx context.Context, card domain.Card) (domain.Card, error) {
	return m.SaveFunc(ctx, card)
}

func (m *cardRepoMock) ListByAccount(ctx context.Context, accountID int64) ([]domain.Card, error) {
	return m.ListByAccountFunc(ctx, accountID)
}

type reviewHistoryRepoMock struct {
	CreateFunc       func(ctx context.Context, entry domain.ReviewHistory) (domain.ReviewHistory, error)
	ListByCardIDFunc func(ctx context.Context, cardID int64, limit, offset int) ([]domain.ReviewHistory, int64, error)
}

func (m *reviewHistoryRepoMock) Create(ctx context.Context, entry domain.ReviewHistory) (domain.ReviewHistory, error) {
	return m.CreateFunc(ctx, entry)
}

func (m *reviewHistoryRepoMock) ListByCardID(ctx context.Context, cardID int64, limit, offset int) ([]domain.ReviewHistory, int64, error) {
	return m.ListByCardIDFunc(ctx, cardID, limit, offset)
}

type knowledgeRepoMock struct {
	ListCodesFunc func(ctx context.Context) ([]string, error)
}

func (m *knowledgeRepoMock) ListCodes(ctx context.Context) ([]string, error) {
	return m.ListCodesFunc(ctx)
}

type cardTypeRepoMock struct {
	ListCodesFunc func(ctx context.Context) ([]string, error)
}

func (m *cardTypeRepoMock) ListCodes(ctx context.Context) ([]string, error) {
	return m.ListCodesFunc(ctx)
}

type txManagerMock struct {
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testAlgorithm(t *testing.T) *srs.Algorithm {
	t.Helper()
	alg, err := srs.New(srs.DefaultConfig())
	if err != nil {
		t.Fatalf("srs.New: unexpected error: %v", err)
	}
	return alg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, cards cardRepo, history reviewHistoryRepo, clock clockwork.Clock) *Service {
	t.Helper()
	return NewService(testLogger(), cards, history,
		&knowledgeRepoMock{ListCodesFunc: func(context.Context) ([]string, error) { return nil, nil }},
		&cardTypeRepoMock{ListCodesFunc: func(context.Context) ([]string, error) { return nil, nil }},
		testAlgorithm(t), clock, nil)
}
