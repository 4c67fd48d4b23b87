package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// ReviewHistoryRepo stores review history entries in memory, append-only.
type ReviewHistoryRepo struct {
	mu      sync.RWMutex
	entries []domain.ReviewHistory
	nextID  int64
}

// NewReviewHistoryRepo creates an empty review history repository.
func NewReviewHistoryRepo() *ReviewHistoryRepo {
	return &ReviewHistoryRepo{nextID: 1}
}

// Create appends an immutable history entry and assigns its ID.
func (r *ReviewHistoryRepo) Create(_ context.Context, entry domain.ReviewHistory) (domain.ReviewHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, entry)
	return entry, nil
}

// ListByCardID returns one page of a card's history, most recent first,
// plus the total entry count for that card.
func (r *ReviewHistoryRepo) ListByCardID(_ context.Context, cardID int64, limit, offset int) ([]domain.ReviewHistory, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.ReviewHistory, 0)
	for _, entry := range r.entries {
		if entry.CardID == cardID {
			matched = append(matched, entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].ReviewedAt.Equal(matched[j].ReviewedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].ReviewedAt.After(matched[j].ReviewedAt)
	})

	total := int64(len(matched))

	if offset >= len(matched) {
		return []domain.ReviewHistory{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}

	page := make([]domain.ReviewHistory, end-offset)
	copy(page, matched[offset:end])
	return page, total, nil
}
