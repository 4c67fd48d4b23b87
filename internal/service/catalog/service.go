// Package catalog exposes the read-only study catalog: the knowledge items
// that can be learned and the card types they are drilled with. The catalog
// is shared by all accounts and curated out of band.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// knowledgeRepo defines the knowledge repository interface needed by catalog service.
type knowledgeRepo interface {
	List(ctx context.Context) ([]domain.Knowledge, error)
	GetByCode(ctx context.Context, code string) (domain.Knowledge, error)
}

// cardTypeRepo defines the card type repository interface needed by catalog service.
type cardTypeRepo interface {
	List(ctx context.Context) ([]domain.CardType, error)
}

// Service implements catalog operations.
type Service struct {
	log       *slog.Logger
	knowledge knowledgeRepo
	cardTypes cardTypeRepo
}

// NewService creates a new catalog service instance.
func NewService(logger *slog.Logger, knowledge knowledgeRepo, cardTypes cardTypeRepo) *Service {
	return &Service{
		log:       logger.With("service", "catalog"),
		knowledge: knowledge,
		cardTypes: cardTypes,
	}
}

// ListKnowledge returns every knowledge item in the catalog.
func (s *Service) ListKnowledge(ctx context.Context) ([]domain.Knowledge, error) {
	items, err := s.knowledge.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list knowledge: %w", err)
	}
	return items, nil
}

// GetKnowledge returns one knowledge item by its code.
func (s *Service) GetKnowledge(ctx context.Context, code string) (domain.Knowledge, error) {
	if code == "" {
		return domain.Knowledge{}, domain.NewValidationError("code", "required")
	}
	item, err := s.knowledge.GetByCode(ctx, code)
	if err != nil {
		return domain.Knowledge{}, fmt.Errorf("get knowledge %q: %w", code, err)
	}
	return item, nil
}

// ListCardTypes returns every card type in the catalog.
func (s *Service) ListCardTypes(ctx context.Context) ([]domain.CardType, error) {
	types, err := s.cardTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list card types: %w", err)
	}
	return types, nil
}
