package domain

import "time"

// StatusFilter selects a scheduling-state bucket in card listings.
// The buckets are independent predicates on the same row, not exclusive
// lifecycle states: a learning card whose due date has passed matches both
// StatusLearning and StatusReview.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"      // no status predicate
	StatusNew      StatusFilter = "new"      // repetitions = 0
	StatusLearning StatusFilter = "learning" // 0 < repetitions < 3
	StatusReview   StatusFilter = "review"   // next_review_date <= now
)

func (s StatusFilter) String() string { return string(s) }

// ParseStatusFilter maps a query-string value to a StatusFilter.
// Empty string and "all" both mean no status predicate.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusNew, StatusLearning, StatusReview:
		return StatusFilter(s), nil
	}
	return "", NewValidationError("status", "must be new, learning, review or all")
}

// CardOrder selects the ordering of a card listing.
type CardOrder int

const (
	// OrderByID is the stable, insertion-order-like default.
	OrderByID CardOrder = iota
	// OrderByDueDate orders soonest-due first (due-card queries only).
	OrderByDueDate
)

// CardFilter contains filtering/pagination parameters for card listings.
// Predicates compose with logical AND. Pagination is offset-based and
// 0-indexed; an out-of-range page yields an empty result, never an error.
type CardFilter struct {
	AccountID    int64
	CardTypeCode string // empty = no card-type predicate
	Status       StatusFilter
	Now          time.Time // reference time for the StatusReview predicate
	Order        CardOrder
	Page         int
	Size         int
}

// Offset returns the row offset of the requested page.
func (f CardFilter) Offset() int { return f.Page * f.Size }
