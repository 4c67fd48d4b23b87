package study

import (
	"context"
	"fmt"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
	"github.com/wordwiseapp/wordwise-backend/pkg/ctxutil"
)

// GetStats derives the account's study statistics from the full card
// snapshot in a single pass. Counts are recomputed at call time, never
// persisted.
func (s *Service) GetStats(ctx context.Context) (domain.Stats, error) {
	accountID, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return domain.Stats{}, domain.ErrUnauthorized
	}

	now := s.clock.Now()

	cards, err := s.cards.ListByAccount(ctx, accountID)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("list cards: %w", err)
	}

	stats := domain.Stats{
		ByCardType: make(map[string]int64, 4),
	}

	for i := range cards {
		card := &cards[i]
		stats.TotalCards++
		if card.IsNew() {
			stats.NewCards++
		}
		if card.IsLearning() {
			stats.LearningCards++
		}
		if card.IsDue(now) {
			stats.DueToday++
		}
		stats.ByCardType[card.CardTypeCode]++
	}

	return stats, nil
}
