package domain

import (
	"time"
)

// Card represents one account's study relationship to a single
// (knowledge item, card type) pair, together with its SM-2 scheduling state.
// The (AccountID, KnowledgeCode, CardTypeCode) triple is unique per account.
type Card struct {
	ID             int64
	AccountID      int64
	KnowledgeCode  string
	CardTypeCode   string
	EaseFactor     float64
	IntervalDays   int
	Repetitions    int
	NextReviewDate time.Time
	LastReviewedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDue reports whether the card needs review at the given time.
func (c *Card) IsDue(now time.Time) bool {
	return !c.NextReviewDate.After(now)
}

// IsNew reports whether the card has never been recalled successfully.
// Repetitions == 0 is the sole condition for the "new" bucket.
func (c *Card) IsNew() bool {
	return c.Repetitions == 0
}

// IsLearning reports whether the card is in the "learning" bucket
// (at least one but fewer than three consecutive successful recalls).
func (c *Card) IsLearning() bool {
	return c.Repetitions > 0 && c.Repetitions < 3
}

// ReviewHistory is an immutable record of a single review submission.
// It is an audit trail only; the scheduler never reads it back.
type ReviewHistory struct {
	ID         int64
	CardID     int64
	Quality    int
	ReviewedAt time.Time
}
