package memory

import (
	"context"
	"testing"
	"time"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

func seedHistory(t *testing.T, repo *ReviewHistoryRepo, cardID int64, qualities ...int) {
	t.Helper()
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, q := range qualities {
		_, err := repo.Create(context.Background(), domain.ReviewHistory{
			CardID:     cardID,
			Quality:    q,
			ReviewedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed history: %v", err)
		}
	}
}

func TestReviewHistoryRepo_ListByCardID_MostRecentFirst(t *testing.T) {
	t.Parallel()

	repo := NewReviewHistoryRepo()
	seedHistory(t, repo, 1, 3, 4, 5)
	seedHistory(t, repo, 2, 0)

	entries, total, err := repo.ListByCardID(context.Background(), 1, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(entries) != 3 {
		t.Fatalf("total %d len %d, want 3 and 3", total, len(entries))
	}
	for i, want := range []int{5, 4, 3} {
		if entries[i].Quality != want {
			t.Errorf("entry %d quality = %d, want %d", i, entries[i].Quality, want)
		}
	}
}

func TestReviewHistoryRepo_ListByCardID_Pagination(t *testing.T) {
	t.Parallel()

	repo := NewReviewHistoryRepo()
	seedHistory(t, repo, 1, 1, 2, 3, 4, 5)

	entries, total, err := repo.ListByCardID(context.Background(), 1, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 || len(entries) != 2 {
		t.Fatalf("total %d len %d, want 5 and 2", total, len(entries))
	}
	if entries[0].Quality != 3 || entries[1].Quality != 2 {
		t.Errorf("wrong page: %+v", entries)
	}

	// Offset past the end keeps the total.
	entries, total, err = repo.ListByCardID(context.Background(), 1, 10, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 || len(entries) != 0 {
		t.Errorf("total %d len %d, want 5 and 0", total, len(entries))
	}
}

func TestReviewHistoryRepo_ListByCardID_Empty(t *testing.T) {
	t.Parallel()

	repo := NewReviewHistoryRepo()

	entries, total, err := repo.ListByCardID(context.Background(), 7, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || len(entries) != 0 {
		t.Errorf("total %d len %d, want zero", total, len(entries))
	}
}
