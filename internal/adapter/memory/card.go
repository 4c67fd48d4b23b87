// Package memory provides in-memory repository implementations guarded by
// mutexes. They are the reference implementations of the storage contracts:
// repository semantics (filter predicates, ordering, pagination, uniqueness)
// are defined by this package's behavior and mirrored by the postgres
// adapters. Used by service tests and suitable for single-process use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// CardRepo stores cards in memory. Save is atomic per card row: the mutex
// serializes concurrent reviews of the same card, which is the storage-layer
// obligation the study service relies on.
type CardRepo struct {
	mu     sync.RWMutex
	cards  map[int64]domain.Card
	nextID int64
}

// NewCardRepo creates an empty card repository.
func NewCardRepo() *CardRepo {
	return &CardRepo{cards: make(map[int64]domain.Card), nextID: 1}
}

// GetByID returns a card by primary key.
func (r *CardRepo) GetByID(_ context.Context, cardID int64) (domain.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.cards[cardID]
	if !ok {
		return domain.Card{}, fmt.Errorf("card %d: %w", cardID, domain.ErrNotFound)
	}
	return card, nil
}

// GetByTriple returns the card for a (account, knowledge, card type) triple.
func (r *CardRepo) GetByTriple(_ context.Context, accountID int64, knowledgeCode, cardTypeCode string) (domain.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, card := range r.cards {
		if card.AccountID == accountID &&
			card.KnowledgeCode == knowledgeCode &&
			card.CardTypeCode == cardTypeCode {
			return card, nil
		}
	}
	return domain.Card{}, fmt.Errorf("card %d/%s/%s: %w", accountID, knowledgeCode, cardTypeCode, domain.ErrNotFound)
}

// Save upserts a card. A zero ID inserts and assigns the next ID; inserting a
// duplicate (account, knowledge, card type) triple fails with
// domain.ErrAlreadyExists.
func (r *CardRepo) Save(_ context.Context, card domain.Card) (domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if card.ID == 0 {
		for _, existing := range r.cards {
			if existing.AccountID == card.AccountID &&
				existing.KnowledgeCode == card.KnowledgeCode &&
				existing.CardTypeCode == card.CardTypeCode {
				return domain.Card{}, fmt.Errorf("card %d/%s/%s: %w",
					card.AccountID, card.KnowledgeCode, card.CardTypeCode, domain.ErrAlreadyExists)
			}
		}
		card.ID = r.nextID
		r.nextID++
	} else if _, ok := r.cards[card.ID]; !ok {
		return domain.Card{}, fmt.Errorf("card %d: %w", card.ID, domain.ErrNotFound)
	}

	r.cards[card.ID] = card
	return card, nil
}

// ListByAccount returns the full unpaginated snapshot of an account's cards,
// ordered by id.
func (r *CardRepo) ListByAccount(_ context.Context, accountID int64) ([]domain.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cards := make([]domain.Card, 0)
	for _, card := range r.cards {
		if card.AccountID == accountID {
			cards = append(cards, card)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

// FindFiltered returns one page of the filtered, ordered result plus the
// total count of the filtered set. An out-of-range page yields an empty
// slice, never an error.
func (r *CardRepo) FindFiltered(_ context.Context, filter domain.CardFilter) ([]domain.Card, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Card, 0)
	for _, card := range r.cards {
		if matches(card, filter) {
			matched = append(matched, card)
		}
	}

	switch filter.Order {
	case domain.OrderByDueDate:
		sort.Slice(matched, func(i, j int) bool {
			if matched[i].NextReviewDate.Equal(matched[j].NextReviewDate) {
				return matched[i].ID < matched[j].ID
			}
			return matched[i].NextReviewDate.Before(matched[j].NextReviewDate)
		})
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	}

	total := int64(len(matched))

	start := filter.Offset()
	if start >= len(matched) {
		return []domain.Card{}, total, nil
	}
	end := start + filter.Size
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]domain.Card, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

// matches applies the filter predicates, composed with logical AND.
func matches(card domain.Card, filter domain.CardFilter) bool {
	if card.AccountID != filter.AccountID {
		return false
	}
	if filter.CardTypeCode != "" && card.CardTypeCode != filter.CardTypeCode {
		return false
	}
	switch filter.Status {
	case domain.StatusNew:
		return card.IsNew()
	case domain.StatusLearning:
		return card.IsLearning()
	case domain.StatusReview:
		return card.IsDue(filter.Now)
	}
	return true
}
