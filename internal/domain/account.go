package domain

import "time"

// Account is a registered user of the learning tool. Cards are exclusively
// owned by one account and are never shared or transferred.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Stats holds the aggregated study statistics for one account.
// Always recomputed from the full card snapshot, never persisted.
type Stats struct {
	TotalCards    int64
	NewCards      int64
	LearningCards int64
	DueToday      int64
	ByCardType    map[string]int64
}
