package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
	"github.com/wordwiseapp/wordwise-backend/pkg/ctxutil"
)

// ReviewCard records a review and updates the card's SM-2 scheduling state.
//
// Pipeline: validate → load → authorize → compute → persist. Each step fails
// the whole call; nothing is written before the computed state is complete.
// The history row is written after the card save: losing it cannot corrupt
// scheduling (the algorithm never reads history), so a history-write failure
// is logged and surfaced to operators instead of failing the review.
func (s *Service) ReviewCard(ctx context.Context, input ReviewCardInput) (domain.Card, error) {
	accountID, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return domain.Card{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Card{}, err
	}

	now := s.clock.Now()

	card, err := s.cards.GetByID(ctx, input.CardID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("get card: %w", err)
	}

	// A card is owned by exactly one account.
	if card.AccountID != accountID {
		return domain.Card{}, fmt.Errorf("card %d: %w", input.CardID, domain.ErrForbidden)
	}

	updated, err := s.alg.NextReview(card, input.Quality, now)
	if err != nil {
		return domain.Card{}, err
	}

	saved, err := s.cards.Save(ctx, updated)
	if err != nil {
		return domain.Card{}, fmt.Errorf("save card: %w", err)
	}

	if _, err := s.history.Create(ctx, domain.ReviewHistory{
		CardID:     saved.ID,
		Quality:    input.Quality,
		ReviewedAt: now,
	}); err != nil {
		// Audit trail only. The review itself already succeeded.
		s.log.ErrorContext(ctx, "review history write failed",
			slog.Int64("account_id", accountID),
			slog.Int64("card_id", saved.ID),
			slog.Any("error", err),
		)
	}

	s.log.InfoContext(ctx, "card reviewed",
		slog.Int64("account_id", accountID),
		slog.Int64("card_id", saved.ID),
		slog.Int("quality", input.Quality),
		slog.Int("repetitions", saved.Repetitions),
		slog.Int("interval_days", saved.IntervalDays),
		slog.Float64("ease_factor", saved.EaseFactor),
	)

	return saved, nil
}

// GetCard returns a single card owned by the requesting account.
func (s *Service) GetCard(ctx context.Context, cardID int64) (domain.Card, error) {
	accountID, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return domain.Card{}, domain.ErrUnauthorized
	}
	if cardID <= 0 {
		return domain.Card{}, domain.NewValidationError("card_id", "required")
	}

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("get card: %w", err)
	}
	if card.AccountID != accountID {
		return domain.Card{}, fmt.Errorf("card %d: %w", cardID, domain.ErrForbidden)
	}

	return card, nil
}
