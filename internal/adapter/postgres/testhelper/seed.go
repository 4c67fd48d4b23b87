package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedAccount creates an account with a unique email. Returns a filled domain.Account.
func SeedAccount(t *testing.T, pool *pgxpool.Pool) domain.Account {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	account := domain.Account{
		Email:        "account-" + suffix + "@example.com",
		PasswordHash: "$2a$04$test.hash." + suffix,
		DisplayName:  "Account " + suffix,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO accounts (email, password_hash, display_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		account.Email, account.PasswordHash, account.DisplayName, account.CreatedAt, account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedAccount insert: %v", err)
	}

	return account
}

// SeedKnowledge creates a knowledge item with a unique code.
// Returns a filled domain.Knowledge.
func SeedKnowledge(t *testing.T, pool *pgxpool.Pool) domain.Knowledge {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.Knowledge{
		Code:        "word-" + suffix,
		Name:        "Word " + suffix,
		Description: "Seeded knowledge item " + suffix,
		Metadata:    domain.Metadata{"level": "B1"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO knowledge (code, name, description, metadata, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.Code, item.Name, item.Description, item.Metadata, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedKnowledge insert: %v", err)
	}

	return item
}

// SeedCardType creates a card type with a unique code. Returns a filled domain.CardType.
func SeedCardType(t *testing.T, pool *pgxpool.Pool) domain.CardType {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	ct := domain.CardType{
		Code:        "type-" + suffix,
		Name:        "Type " + suffix,
		Description: "Seeded card type " + suffix,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO card_types (code, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		ct.Code, ct.Name, ct.Description, ct.CreatedAt, ct.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCardType insert: %v", err)
	}

	return ct
}

// SeedCard creates a card with default scheduling state for the given account,
// knowledge and card type. Returns a filled domain.Card.
func SeedCard(t *testing.T, pool *pgxpool.Pool, accountID int64, knowledgeCode, cardTypeCode string) domain.Card {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	card := domain.Card{
		AccountID:      accountID,
		KnowledgeCode:  knowledgeCode,
		CardTypeCode:   cardTypeCode,
		EaseFactor:     2.5,
		IntervalDays:   1,
		Repetitions:    0,
		NextReviewDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO account_cards (account_id, knowledge_code, card_type_code, ease_factor,
			interval_days, repetitions, next_review_date, last_reviewed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		card.AccountID, card.KnowledgeCode, card.CardTypeCode, card.EaseFactor,
		card.IntervalDays, card.Repetitions, card.NextReviewDate, card.LastReviewedAt,
		card.CreatedAt, card.UpdatedAt,
	).Scan(&card.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedCard insert: %v", err)
	}

	return card
}
