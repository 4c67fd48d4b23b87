package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
	"github.com/wordwiseapp/wordwise-backend/internal/service/study"
)

type studyServiceMock struct {
	ReviewCardFunc      func(ctx context.Context, input study.ReviewCardInput) (domain.Card, error)
	GetCardFunc         func(ctx context.Context, cardID int64) (domain.Card, error)
	ListCardsFunc       func(ctx context.Context, input study.ListCardsInput) ([]domain.Card, int64, error)
	ListDueCardsFunc    func(ctx context.Context, input study.ListDueCardsInput) ([]domain.Card, int64, error)
	GetCardHistoryFunc  func(ctx context.Context, input study.GetCardHistoryInput) ([]domain.ReviewHistory, int64, error)
	InitializeCardsFunc func(ctx context.Context, input study.InitializeCardsInput) (int, error)
	GetStatsFunc        func(ctx context.Context) (domain.Stats, error)
}

func (m *studyServiceMock) ReviewCard(ctx context.Context, input study.ReviewCardInput) (domain.Card, error) {
	return m.ReviewCardFunc(ctx, input)
}

func (m *studyServiceMock) GetCard(ctx context.Context, cardID int64) (domain.Card, error) {
	return m.GetCardFunc(ctx, cardID)
}

func (m *studyServiceMock) ListCards(ctx context.Context, input study.ListCardsInput) ([]domain.Card, int64, error) {
	return m.ListCardsFunc(ctx, input)
}

func (m *studyServiceMock) ListDueCards(ctx context.Context, input study.ListDueCardsInput) ([]domain.Card, int64, error) {
	return m.ListDueCardsFunc(ctx, input)
}

func (m *studyServiceMock) GetCardHistory(ctx context.Context, input study.GetCardHistoryInput) ([]domain.ReviewHistory, int64, error) {
	return m.GetCardHistoryFunc(ctx, input)
}

func (m *studyServiceMock) InitializeCards(ctx context.Context, input study.InitializeCardsInput) (int, error) {
	return m.InitializeCardsFunc(ctx, input)
}

func (m *studyServiceMock) GetStats(ctx context.Context) (domain.Stats, error) {
	return m.GetStatsFunc(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCards_Review_Success(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &studyServiceMock{
		ReviewCardFunc: func(_ context.Context, input study.ReviewCardInput) (domain.Card, error) {
			if input.CardID != 7 {
				t.Errorf("expected card id 7, got %d", input.CardID)
			}
			if input.Quality != 4 {
				t.Errorf("expected quality 4, got %d", input.Quality)
			}
			return domain.Card{
				ID:             7,
				KnowledgeCode:  "apple",
				CardTypeCode:   "recognition",
				EaseFactor:     2.5,
				IntervalDays:   1,
				Repetitions:    1,
				NextReviewDate: now.Add(24 * time.Hour),
				LastReviewedAt: &now,
			}, nil
		},
	}
	h := NewCardsHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/cards/7/review", strings.NewReader(`{"quality":4}`))
	req.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	h.Review(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp cardResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 7 || resp.Repetitions != 1 {
		t.Errorf("unexpected card in response: %+v", resp)
	}
	if resp.LastReviewedAt == nil || !resp.LastReviewedAt.Equal(now) {
		t.Errorf("expected lastReviewedAt %v, got %v", now, resp.LastReviewedAt)
	}
}

func TestCards_Review_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewCardsHandler(&studyServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/cards/abc/review", strings.NewReader(`{"quality":4}`))
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()

	h.Review(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCards_Review_InvalidQuality(t *testing.T) {
	t.Parallel()

	svc := &studyServiceMock{
		ReviewCardFunc: func(_ context.Context, input study.ReviewCardInput) (domain.Card, error) {
			return domain.Card{}, domain.NewValidationError("quality", "must be between 0 and 5")
		},
	}
	h := NewCardsHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/cards/7/review", strings.NewReader(`{"quality":9}`))
	req.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	h.Review(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp struct {
		Error  string               `json:"error"`
		Fields []fieldErrorResponse `json:"fields"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Field != "quality" {
		t.Errorf("expected a 'quality' field error, got %+v", resp.Fields)
	}
}

func TestCards_Review_NotFound(t *testing.T) {
	t.Parallel()

	svc := &studyServiceMock{
		ReviewCardFunc: func(_ context.Context, _ study.ReviewCardInput) (domain.Card, error) {
			return domain.Card{}, domain.ErrNotFound
		},
	}
	h := NewCardsHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/cards/99/review", strings.NewReader(`{"quality":4}`))
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()

	h.Review(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCards_List_ParsesQuery(t *testing.T) {
	t.Parallel()

	var got study.ListCardsInput
	svc := &studyServiceMock{
		ListCardsFunc: func(_ context.Context, input study.ListCardsInput) ([]domain.Card, int64, error) {
			got = input
			return []domain.Card{}, 0, nil
		},
	}
	h := NewCardsHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/cards?type=recognition&status=learning&page=2&size=10", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	want := study.ListCardsInput{CardTypeCode: "recognition", Status: "learning", Page: 2, Size: 10}
	if got != want {
		t.Errorf("expected input %+v, got %+v", want, got)
	}
}

func TestCards_List_BadPage(t *testing.T) {
	t.Parallel()

	h := NewCardsHandler(&studyServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/cards?page=two", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCards_ListDue_Page(t *testing.T) {
	t.Parallel()

	svc := &studyServiceMock{
		ListDueCardsFunc: func(_ context.Context, input study.ListDueCardsInput) ([]domain.Card, int64, error) {
			return []domain.Card{{ID: 1}, {ID: 2}}, 5, nil
		},
	}
	h := NewCardsHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/cards/due?size=2", nil)
	rec := httptest.NewRecorder()

	h.ListDue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp cardPageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 2 || resp.TotalCount != 5 || resp.Size != 2 {
		t.Errorf("unexpected page: %+v", resp)
	}
}

func TestCards_List_DefaultSizeInResponse(t *testing.T) {
	t.Parallel()

	svc := &studyServiceMock{
		ListCardsFunc: func(_ context.Context, _ study.ListCardsInput) ([]domain.Card, int64, error) {
			return []domain.Card{}, 0, nil
		},
	}
	h := NewCardsHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/cards", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	var resp cardPageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Size != study.DefaultPageSize {
		t.Errorf("expected default size %d, got %d", study.DefaultPageSize, resp.Size)
	}
	if resp.Items == nil {
		t.Error("expected items to encode as an empty array, not null")
	}
}

func TestCards_History(t *testing.T) {
	t.Parallel()

	reviewedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &studyServiceMock{
		GetCardHistoryFunc: func(_ context.Context, input study.GetCardHistoryInput) ([]domain.ReviewHistory, int64, error) {
			if input.CardID != 7 || input.Limit != 10 || input.Offset != 20 {
				t.Errorf("unexpected input: %+v", input)
			}
			return []domain.ReviewHistory{{ID: 3, CardID: 7, Quality: 5, ReviewedAt: reviewedAt}}, 21, nil
		},
	}
	h := NewCardsHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/cards/7/history?limit=10&offset=20", nil)
	req.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	h.History(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp historyPageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCount != 21 || len(resp.Items) != 1 || resp.Items[0].Quality != 5 {
		t.Errorf("unexpected history page: %+v", resp)
	}
}

func TestCards_Initialize_EmptyBody(t *testing.T) {
	t.Parallel()

	svc := &studyServiceMock{
		InitializeCardsFunc: func(_ context.Context, input study.InitializeCardsInput) (int, error) {
			if input.CardTypeCodes != nil {
				t.Errorf("expected nil card type codes, got %v", input.CardTypeCodes)
			}
			return 12, nil
		},
	}
	h := NewCardsHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/cards/initialize", nil)
	rec := httptest.NewRecorder()

	h.Initialize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["created"] != 12 {
		t.Errorf("expected 12 created, got %d", resp["created"])
	}
}

func TestCards_Initialize_WithBody(t *testing.T) {
	t.Parallel()

	svc := &studyServiceMock{
		InitializeCardsFunc: func(_ context.Context, input study.InitializeCardsInput) (int, error) {
			if len(input.CardTypeCodes) != 1 || input.CardTypeCodes[0] != "recall" {
				t.Errorf("unexpected card type codes: %v", input.CardTypeCodes)
			}
			return 4, nil
		},
	}
	h := NewCardsHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/cards/initialize", strings.NewReader(`{"cardTypeCodes":["recall"]}`))
	rec := httptest.NewRecorder()

	h.Initialize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestCards_Stats(t *testing.T) {
	t.Parallel()

	svc := &studyServiceMock{
		GetStatsFunc: func(_ context.Context) (domain.Stats, error) {
			return domain.Stats{
				TotalCards:    10,
				NewCards:      3,
				LearningCards: 4,
				DueToday:      5,
				ByCardType:    map[string]int64{"recognition": 6, "recall": 4},
			}, nil
		},
	}
	h := NewCardsHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/me/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCards != 10 || resp.DueToday != 5 || resp.ByCardType["recall"] != 4 {
		t.Errorf("unexpected stats: %+v", resp)
	}
}
