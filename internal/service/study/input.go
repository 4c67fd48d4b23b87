package study

import (
	"github.com/wordwiseapp/wordwise-backend/internal/domain"
	"github.com/wordwiseapp/wordwise-backend/internal/service/srs"
)

// Pagination bounds for card and history listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// ReviewCardInput holds the parameters for submitting a review.
type ReviewCardInput struct {
	CardID  int64
	Quality int
}

// Validate checks all fields and collects all errors.
func (i *ReviewCardInput) Validate() error {
	var errs []domain.FieldError

	if i.CardID <= 0 {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if i.Quality < srs.MinQuality || i.Quality > srs.MaxQuality {
		errs = append(errs, domain.FieldError{Field: "quality", Message: "must be between 0 and 5"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListCardsInput holds the parameters for listing an account's cards.
type ListCardsInput struct {
	CardTypeCode string
	Status       string // "new", "learning", "review", "all" or empty
	Page         int
	Size         int
}

// Validate checks all fields and collects all errors.
func (i *ListCardsInput) Validate() error {
	var errs []domain.FieldError

	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be >= 0"})
	}
	if i.Size < 0 || i.Size > MaxPageSize {
		errs = append(errs, domain.FieldError{Field: "size", Message: "must be between 0 and 200"})
	}
	if _, err := domain.ParseStatusFilter(i.Status); err != nil {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be new, learning, review or all"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// pageSize returns the effective page size (0 means the default).
func (i *ListCardsInput) pageSize() int {
	if i.Size == 0 {
		return DefaultPageSize
	}
	return i.Size
}

// ListDueCardsInput holds the parameters for listing due cards.
type ListDueCardsInput struct {
	CardTypeCode string
	Page         int
	Size         int
}

// Validate checks all fields and collects all errors.
func (i *ListDueCardsInput) Validate() error {
	var errs []domain.FieldError

	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be >= 0"})
	}
	if i.Size < 0 || i.Size > MaxPageSize {
		errs = append(errs, domain.FieldError{Field: "size", Message: "must be between 0 and 200"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *ListDueCardsInput) pageSize() int {
	if i.Size == 0 {
		return DefaultPageSize
	}
	return i.Size
}

// GetCardHistoryInput holds the parameters for fetching card review history.
type GetCardHistoryInput struct {
	CardID int64
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i *GetCardHistoryInput) Validate() error {
	var errs []domain.FieldError

	if i.CardID <= 0 {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > MaxPageSize {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// InitializeCardsInput holds the parameters for card initialization.
// Empty CardTypeCodes means every card type in the catalog.
type InitializeCardsInput struct {
	CardTypeCodes []string
}

// Validate checks all fields and collects all errors.
func (i *InitializeCardsInput) Validate() error {
	var errs []domain.FieldError

	for _, code := range i.CardTypeCodes {
		if code == "" {
			errs = append(errs, domain.FieldError{Field: "card_type_codes", Message: "codes must be non-empty"})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
