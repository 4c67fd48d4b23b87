package domain

import "time"

// Metadata is the free-form string-keyed metadata attached to a knowledge
// item. Stored as JSONB; only the "level" key is currently interpreted.
type Metadata map[string]string

// Level returns the difficulty level recorded in the metadata, if any.
func (m Metadata) Level() string {
	if m == nil {
		return ""
	}
	return m["level"]
}

// Knowledge is an immutable reference entity describing a learnable item
// (a word). Maintained by the catalog; the scheduling core treats it as
// read-only and addresses it by Code.
type Knowledge struct {
	Code        string
	Name        string
	Description string
	Metadata    Metadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CardType is an immutable reference entity describing one way of studying
// a knowledge item (e.g. recognition vs. recall). Addressed by Code.
type CardType struct {
	Code        string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
