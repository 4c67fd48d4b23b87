package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
	"github.com/wordwiseapp/wordwise-backend/internal/service/study"
)

// studyService defines the minimal interface needed by CardsHandler.
type studyService interface {
	ReviewCard(ctx context.Context, input study.ReviewCardInput) (domain.Card, error)
	GetCard(ctx context.Context, cardID int64) (domain.Card, error)
	ListCards(ctx context.Context, input study.ListCardsInput) ([]domain.Card, int64, error)
	ListDueCards(ctx context.Context, input study.ListDueCardsInput) ([]domain.Card, int64, error)
	GetCardHistory(ctx context.Context, input study.GetCardHistoryInput) ([]domain.ReviewHistory, int64, error)
	InitializeCards(ctx context.Context, input study.InitializeCardsInput) (int, error)
	GetStats(ctx context.Context) (domain.Stats, error)
}

// CardsHandler serves the card study REST endpoints.
type CardsHandler struct {
	svc studyService
	log *slog.Logger
}

// NewCardsHandler creates a CardsHandler.
func NewCardsHandler(svc studyService, logger *slog.Logger) *CardsHandler {
	return &CardsHandler{svc: svc, log: logger.With("handler", "cards")}
}

type cardResponse struct {
	ID             int64      `json:"id"`
	KnowledgeCode  string     `json:"knowledgeCode"`
	CardTypeCode   string     `json:"cardTypeCode"`
	EaseFactor     float64    `json:"easeFactor"`
	IntervalDays   int        `json:"intervalDays"`
	Repetitions    int        `json:"repetitions"`
	NextReviewDate time.Time  `json:"nextReviewDate"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
}

type cardPageResponse struct {
	Items      []cardResponse `json:"items"`
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
}

type reviewRequest struct {
	Quality int `json:"quality"`
}

type historyEntryResponse struct {
	ID         int64     `json:"id"`
	Quality    int       `json:"quality"`
	ReviewedAt time.Time `json:"reviewedAt"`
}

type historyPageResponse struct {
	Items      []historyEntryResponse `json:"items"`
	TotalCount int64                  `json:"totalCount"`
}

type initializeRequest struct {
	CardTypeCodes []string `json:"cardTypeCodes"`
}

type statsResponse struct {
	TotalCards    int64            `json:"totalCards"`
	NewCards      int64            `json:"newCards"`
	LearningCards int64            `json:"learningCards"`
	DueToday      int64            `json:"dueToday"`
	ByCardType    map[string]int64 `json:"byCardType"`
}

// List handles GET /api/v1/me/cards.
func (h *CardsHandler) List(w http.ResponseWriter, r *http.Request) {
	input := study.ListCardsInput{
		CardTypeCode: r.URL.Query().Get("type"),
		Status:       r.URL.Query().Get("status"),
	}
	var err error
	if input.Page, err = queryInt(r, "page", 0); err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	if input.Size, err = queryInt(r, "size", 0); err != nil {
		writeError(w, http.StatusBadRequest, "size must be an integer")
		return
	}

	cards, total, err := h.svc.ListCards(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardPage(cards, total, input.Page, input.Size))
}

// ListDue handles GET /api/v1/me/cards/due.
func (h *CardsHandler) ListDue(w http.ResponseWriter, r *http.Request) {
	input := study.ListDueCardsInput{
		CardTypeCode: r.URL.Query().Get("type"),
	}
	var err error
	if input.Page, err = queryInt(r, "page", 0); err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	if input.Size, err = queryInt(r, "size", 0); err != nil {
		writeError(w, http.StatusBadRequest, "size must be an integer")
		return
	}

	cards, total, err := h.svc.ListDueCards(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardPage(cards, total, input.Page, input.Size))
}

// Get handles GET /api/v1/me/cards/{id}.
func (h *CardsHandler) Get(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	card, err := h.svc.GetCard(r.Context(), cardID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// Review handles POST /api/v1/me/cards/{id}/review.
func (h *CardsHandler) Review(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, err := h.svc.ReviewCard(r.Context(), study.ReviewCardInput{
		CardID:  cardID,
		Quality: req.Quality,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// History handles GET /api/v1/me/cards/{id}/history.
func (h *CardsHandler) History(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	input := study.GetCardHistoryInput{CardID: cardID}
	if input.Limit, err = queryInt(r, "limit", 0); err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	if input.Offset, err = queryInt(r, "offset", 0); err != nil {
		writeError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}

	entries, total, err := h.svc.GetCardHistory(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	items := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyEntryResponse{ID: e.ID, Quality: e.Quality, ReviewedAt: e.ReviewedAt})
	}
	writeJSON(w, http.StatusOK, historyPageResponse{Items: items, TotalCount: total})
}

// Initialize handles POST /api/v1/me/cards/initialize.
func (h *CardsHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	created, err := h.svc.InitializeCards(r.Context(), study.InitializeCardsInput{
		CardTypeCodes: req.CardTypeCodes,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"created": created})
}

// Stats handles GET /api/v1/me/stats.
func (h *CardsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStats(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalCards:    stats.TotalCards,
		NewCards:      stats.NewCards,
		LearningCards: stats.LearningCards,
		DueToday:      stats.DueToday,
		ByCardType:    stats.ByCardType,
	})
}

func toCardResponse(card domain.Card) cardResponse {
	return cardResponse{
		ID:             card.ID,
		KnowledgeCode:  card.KnowledgeCode,
		CardTypeCode:   card.CardTypeCode,
		EaseFactor:     card.EaseFactor,
		IntervalDays:   card.IntervalDays,
		Repetitions:    card.Repetitions,
		NextReviewDate: card.NextReviewDate,
		LastReviewedAt: card.LastReviewedAt,
	}
}

func toCardPage(cards []domain.Card, total int64, page, size int) cardPageResponse {
	items := make([]cardResponse, 0, len(cards))
	for _, card := range cards {
		items = append(items, toCardResponse(card))
	}
	if size == 0 {
		size = study.DefaultPageSize
	}
	return cardPageResponse{Items: items, TotalCount: total, Page: page, Size: size}
}

// pathID parses the {id} path value as a positive int64.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
