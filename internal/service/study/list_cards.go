package study

import (
	"context"
	"fmt"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
	"github.com/wordwiseapp/wordwise-backend/pkg/ctxutil"
)

// ListCards returns one page of the account's cards, optionally filtered by
// card type and status bucket, ordered by id ascending. The returned total
// counts the filtered set before pagination.
func (s *Service) ListCards(ctx context.Context, input ListCardsInput) ([]domain.Card, int64, error) {
	accountID, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	status, err := domain.ParseStatusFilter(input.Status)
	if err != nil {
		return nil, 0, err
	}

	cards, total, err := s.cards.FindFiltered(ctx, domain.CardFilter{
		AccountID:    accountID,
		CardTypeCode: input.CardTypeCode,
		Status:       status,
		Now:          s.clock.Now(),
		Order:        domain.OrderByID,
		Page:         input.Page,
		Size:         input.pageSize(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("find cards: %w", err)
	}

	return cards, total, nil
}

// ListDueCards returns one page of the account's due cards
// (nextReviewDate <= now), soonest-due first.
func (s *Service) ListDueCards(ctx context.Context, input ListDueCardsInput) ([]domain.Card, int64, error) {
	accountID, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	cards, total, err := s.cards.FindFiltered(ctx, domain.CardFilter{
		AccountID:    accountID,
		CardTypeCode: input.CardTypeCode,
		Status:       domain.StatusReview,
		Now:          s.clock.Now(),
		Order:        domain.OrderByDueDate,
		Page:         input.Page,
		Size:         input.pageSize(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("find due cards: %w", err)
	}

	return cards, total, nil
}

// GetCardHistory returns the review history of an owned card,
// most recent first.
func (s *Service) GetCardHistory(ctx context.Context, input GetCardHistoryInput) ([]domain.ReviewHistory, int64, error) {
	accountID, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	card, err := s.cards.GetByID(ctx, input.CardID)
	if err != nil {
		return nil, 0, fmt.Errorf("get card: %w", err)
	}
	if card.AccountID != accountID {
		return nil, 0, fmt.Errorf("card %d: %w", input.CardID, domain.ErrForbidden)
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultPageSize
	}

	entries, total, err := s.history.ListByCardID(ctx, input.CardID, limit, input.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list review history: %w", err)
	}

	return entries, total, nil
}
