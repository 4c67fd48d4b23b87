package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// catalogService defines the minimal interface needed by CatalogHandler.
type catalogService interface {
	ListKnowledge(ctx context.Context) ([]domain.Knowledge, error)
	GetKnowledge(ctx context.Context, code string) (domain.Knowledge, error)
	ListCardTypes(ctx context.Context) ([]domain.CardType, error)
}

// CatalogHandler serves the read-only catalog endpoints.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

type knowledgeResponse struct {
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type cardTypeResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListKnowledge handles GET /api/v1/knowledge.
func (h *CatalogHandler) ListKnowledge(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListKnowledge(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]knowledgeResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toKnowledgeResponse(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

// GetKnowledge handles GET /api/v1/knowledge/{code}.
func (h *CatalogHandler) GetKnowledge(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.GetKnowledge(r.Context(), r.PathValue("code"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toKnowledgeResponse(item))
}

// ListCardTypes handles GET /api/v1/card-types.
func (h *CatalogHandler) ListCardTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListCardTypes(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]cardTypeResponse, 0, len(types))
	for _, ct := range types {
		out = append(out, cardTypeResponse{Code: ct.Code, Name: ct.Name, Description: ct.Description})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func toKnowledgeResponse(item domain.Knowledge) knowledgeResponse {
	return knowledgeResponse{
		Code:        item.Code,
		Name:        item.Name,
		Description: item.Description,
		Metadata:    item.Metadata,
		CreatedAt:   item.CreatedAt,
	}
}
