// Package srs implements the SM-2 spaced-repetition scheduling algorithm.
//
// One fixed SM-2 variant:
//   - quality < 3 (failed recall): repetitions reset to 0, interval to 1 day
//   - quality >= 3 (successful recall): repetitions incremented; interval is
//     1 day after the first success, 6 days after the second, then the
//     previous interval multiplied by the new ease factor
//   - the ease factor is adjusted on every review and never drops below the
//     configured minimum; growth is unbounded above
package srs

import (
	"math"
	"time"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// Scheduling defaults. NewCard is the only place cards acquire these values.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// Quality is the 0-5 self-assessed recall rating; below passThreshold
	// the recall counts as failed.
	MinQuality    = 0
	MaxQuality    = 5
	passThreshold = 3

	firstInterval  = 1 // days until the second review
	secondInterval = 6 // days until the third review
)

// Config holds the injectable algorithm parameters.
type Config struct {
	DefaultEaseFactor float64
	MinEaseFactor     float64
}

// DefaultConfig returns the standard SM-2 parameters.
func DefaultConfig() Config {
	return Config{
		DefaultEaseFactor: DefaultEaseFactor,
		MinEaseFactor:     MinEaseFactor,
	}
}

// Algorithm computes SM-2 state transitions. Stateless and safe for
// concurrent use.
type Algorithm struct {
	cfg Config
}

// New creates an Algorithm with the given parameters.
func New(cfg Config) (*Algorithm, error) {
	if cfg.MinEaseFactor <= 0 {
		return nil, domain.NewValidationError("min_ease_factor", "must be positive")
	}
	if cfg.DefaultEaseFactor < cfg.MinEaseFactor {
		return nil, domain.NewValidationError("default_ease_factor", "must be >= min_ease_factor")
	}
	return &Algorithm{cfg: cfg}, nil
}

// NextReview returns the card's scheduling state after a review with the
// given quality rating at the given time. The input card is not modified.
// Quality outside 0..5 fails with a validation error before any state is
// computed; values are never clamped.
//
// Deterministic: the same (card, quality, now) always yields the same state.
func (a *Algorithm) NextReview(card domain.Card, quality int, now time.Time) (domain.Card, error) {
	if quality < MinQuality || quality > MaxQuality {
		return domain.Card{}, domain.NewValidationError("quality", "must be between 0 and 5")
	}

	ease := a.nextEaseFactor(card.EaseFactor, quality)

	var repetitions, intervalDays int
	if quality < passThreshold {
		// Failed recall: back to the beginning.
		repetitions = 0
		intervalDays = 1
	} else {
		repetitions = card.Repetitions + 1
		intervalDays = nextInterval(repetitions, ease, card.IntervalDays)
	}

	next := card
	next.EaseFactor = ease
	next.Repetitions = repetitions
	next.IntervalDays = intervalDays
	next.NextReviewDate = now.Add(time.Duration(intervalDays) * 24 * time.Hour)
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt

	return next, nil
}

// NewCard creates a card with the default scheduling state: due immediately,
// never reviewed.
func (a *Algorithm) NewCard(accountID int64, knowledgeCode, cardTypeCode string, now time.Time) domain.Card {
	return domain.Card{
		AccountID:      accountID,
		KnowledgeCode:  knowledgeCode,
		CardTypeCode:   cardTypeCode,
		EaseFactor:     a.cfg.DefaultEaseFactor,
		IntervalDays:   firstInterval,
		Repetitions:    0,
		NextReviewDate: now,
		LastReviewedAt: nil,
	}
}

// nextEaseFactor applies the SM-2 ease adjustment
// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)), clamped below at the
// configured minimum and rounded half-up to two decimal places.
// Computed on every review, pass or fail.
func (a *Algorithm) nextEaseFactor(current float64, quality int) float64 {
	miss := float64(MaxQuality - quality)
	adjustment := 0.1 - miss*(0.08+miss*0.02)

	ease := current + adjustment
	if ease < a.cfg.MinEaseFactor {
		ease = a.cfg.MinEaseFactor
	}
	return roundEase(ease)
}

// nextInterval computes the interval in days for a successful recall.
// For repetitions > 2 the PREVIOUS interval is multiplied by the newly
// computed ease factor, never dropping below one day.
func nextInterval(repetitions int, ease float64, previousIntervalDays int) int {
	switch repetitions {
	case 1:
		return firstInterval
	case 2:
		return secondInterval
	default:
		interval := int(math.Round(float64(previousIntervalDays) * ease))
		if interval < 1 {
			interval = 1
		}
		return interval
	}
}

// roundEase rounds to two decimals, half away from zero (half-up for the
// positive values ease factors take).
func roundEase(f float64) float64 {
	return math.Round(f*100) / 100
}
