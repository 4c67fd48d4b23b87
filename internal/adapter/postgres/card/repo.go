// Package card implements the card repository using PostgreSQL.
// The filter listing is built with squirrel; everything else is raw SQL.
package card

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wordwiseapp/wordwise-backend/internal/adapter/postgres"
	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

const cardColumns = `id, account_id, knowledge_code, card_type_code, ease_factor,
interval_days, repetitions, next_review_date, last_reviewed_at, created_at, updated_at`

// Repo provides card persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new card repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT ` + cardColumns + `
FROM account_cards
WHERE id = $1`

// GetByID returns a card by primary key.
func (r *Repo) GetByID(ctx context.Context, cardID int64) (domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	card, err := scanCard(querier.QueryRow(ctx, getByIDSQL, cardID))
	if err != nil {
		return domain.Card{}, postgres.MapError(err, "card", cardID)
	}

	return card, nil
}

const getByTripleSQL = `
SELECT ` + cardColumns + `
FROM account_cards
WHERE account_id = $1 AND knowledge_code = $2 AND card_type_code = $3`

// GetByTriple returns the card for a (account, knowledge, card type) triple.
func (r *Repo) GetByTriple(ctx context.Context, accountID int64, knowledgeCode, cardTypeCode string) (domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	card, err := scanCard(querier.QueryRow(ctx, getByTripleSQL, accountID, knowledgeCode, cardTypeCode))
	if err != nil {
		return domain.Card{}, postgres.MapError(err,
			fmt.Sprintf("card %s/%s for account", knowledgeCode, cardTypeCode), accountID)
	}

	return card, nil
}

const listByAccountSQL = `
SELECT ` + cardColumns + `
FROM account_cards
WHERE account_id = $1
ORDER BY id`

// ListByAccount returns the full unpaginated snapshot of an account's cards,
// ordered by id.
func (r *Repo) ListByAccount(ctx context.Context, accountID int64) ([]domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByAccountSQL, accountID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return cards, nil
}

// FindFiltered returns one page of the filtered, ordered result plus the
// total count of the filtered set. One parameterized query shape covers all
// status and card type combinations.
func (r *Repo) FindFiltered(ctx context.Context, filter domain.CardFilter) ([]domain.Card, int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	where := filterPredicates(filter)

	countSQL, countArgs, err := sq.
		Select("count(*)").
		From("account_cards").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cards: %w", err)
	}

	query := sq.
		Select(cardColumns).
		From("account_cards").
		Where(where).
		Offset(uint64(filter.Offset())).
		Limit(uint64(filter.Size)).
		PlaceholderFormat(sq.Dollar)

	switch filter.Order {
	case domain.OrderByDueDate:
		query = query.OrderBy("next_review_date ASC", "id ASC")
	default:
		query = query.OrderBy("id ASC")
	}

	listSQL, listArgs, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("find cards: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("find cards: %w", err)
	}

	return cards, total, nil
}

// filterPredicates translates a CardFilter into its WHERE conjunction.
// Status predicates mirror the in-memory reference implementation.
func filterPredicates(filter domain.CardFilter) sq.And {
	where := sq.And{sq.Eq{"account_id": filter.AccountID}}

	if filter.CardTypeCode != "" {
		where = append(where, sq.Eq{"card_type_code": filter.CardTypeCode})
	}

	switch filter.Status {
	case domain.StatusNew:
		where = append(where, sq.Eq{"repetitions": 0})
	case domain.StatusLearning:
		where = append(where, sq.Gt{"repetitions": 0}, sq.Lt{"repetitions": 3})
	case domain.StatusReview:
		where = append(where, sq.LtOrEq{"next_review_date": filter.Now})
	}

	return where
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const insertCardSQL = `
INSERT INTO account_cards (account_id, knowledge_code, card_type_code, ease_factor,
	interval_days, repetitions, next_review_date, last_reviewed_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + cardColumns

const updateCardSQL = `
UPDATE account_cards
SET ease_factor = $2, interval_days = $3, repetitions = $4,
    next_review_date = $5, last_reviewed_at = $6, updated_at = $7
WHERE id = $1
RETURNING ` + cardColumns

// Save upserts a card. A zero ID inserts; a duplicate (account, knowledge,
// card type) triple results in domain.ErrAlreadyExists via the unique
// constraint. A nonzero ID updates the scheduling state and returns
// domain.ErrNotFound if the row is gone.
func (r *Repo) Save(ctx context.Context, card domain.Card) (domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	if card.ID == 0 {
		if card.CreatedAt.IsZero() {
			card.CreatedAt = now
		}
		saved, err := scanCard(querier.QueryRow(ctx, insertCardSQL,
			card.AccountID, card.KnowledgeCode, card.CardTypeCode, card.EaseFactor,
			card.IntervalDays, card.Repetitions, card.NextReviewDate, card.LastReviewedAt,
			card.CreatedAt, now))
		if err != nil {
			return domain.Card{}, postgres.MapError(err,
				fmt.Sprintf("card %s/%s for account", card.KnowledgeCode, card.CardTypeCode), card.AccountID)
		}
		return saved, nil
	}

	saved, err := scanCard(querier.QueryRow(ctx, updateCardSQL,
		card.ID, card.EaseFactor, card.IntervalDays, card.Repetitions,
		card.NextReviewDate, card.LastReviewedAt, now))
	if err != nil {
		return domain.Card{}, postgres.MapError(err, "card", card.ID)
	}

	return saved, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanCard(row pgx.Row) (domain.Card, error) {
	var c domain.Card
	err := row.Scan(&c.ID, &c.AccountID, &c.KnowledgeCode, &c.CardTypeCode, &c.EaseFactor,
		&c.IntervalDays, &c.Repetitions, &c.NextReviewDate, &c.LastReviewedAt,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Card{}, err
	}
	return c, nil
}

func scanCards(rows pgx.Rows) ([]domain.Card, error) {
	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.ID, &c.AccountID, &c.KnowledgeCode, &c.CardTypeCode, &c.EaseFactor,
			&c.IntervalDays, &c.Repetitions, &c.NextReviewDate, &c.LastReviewedAt,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if cards == nil {
		cards = []domain.Card{}
	}

	return cards, nil
}
