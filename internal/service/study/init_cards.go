package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
	"github.com/wordwiseapp/wordwise-backend/pkg/ctxutil"
)

// InitializeCards creates a card with default scheduling state for every
// (knowledge item, card type) pair the account does not have a card for yet.
// The (account, knowledge, card type) triple stays unique: existing cards are
// skipped, never reset. Returns the number of cards created.
func (s *Service) InitializeCards(ctx context.Context, input InitializeCardsInput) (int, error) {
	accountID, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return 0, err
	}

	knowledgeCodes, err := s.knowledge.ListCodes(ctx)
	if err != nil {
		return 0, fmt.Errorf("list knowledge codes: %w", err)
	}

	typeCodes, err := s.cardTypes.ListCodes(ctx)
	if err != nil {
		return 0, fmt.Errorf("list card type codes: %w", err)
	}
	if len(input.CardTypeCodes) > 0 {
		for _, code := range input.CardTypeCodes {
			if !slices.Contains(typeCodes, code) {
				return 0, fmt.Errorf("card type %q: %w", code, domain.ErrNotFound)
			}
		}
		typeCodes = input.CardTypeCodes
	}

	now := s.clock.Now()
	created := 0

	// All creates commit or roll back together. A concurrent initializer
	// racing on the same triple aborts this transaction via the uniqueness
	// constraint; a retry then sees the cards already in place.
	err = s.runInTx(ctx, func(txCtx context.Context) error {
		for _, knowledgeCode := range knowledgeCodes {
			for _, typeCode := range typeCodes {
				_, err := s.cards.GetByTriple(txCtx, accountID, knowledgeCode, typeCode)
				if err == nil {
					continue // already initialized
				}
				if !errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("check card %s/%s: %w", knowledgeCode, typeCode, err)
				}

				card := s.alg.NewCard(accountID, knowledgeCode, typeCode, now)
				if _, err := s.cards.Save(txCtx, card); err != nil {
					return fmt.Errorf("create card %s/%s: %w", knowledgeCode, typeCode, err)
				}
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "cards initialized",
		slog.Int64("account_id", accountID),
		slog.Int("created", created),
	)

	return created, nil
}
