package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReferenceSourceSeed     = "seed"
	ReferenceSourceAccepted = "accepted"
)

// ReferenceExample is a curated or accepted rewrite used by the
// retrieval tier.
type ReferenceExample struct {
	Id          uuid.UUID
	Category    string
	Pattern     string
	Replacement string
	Example     string
	Guidance    string
	Source      string
	Embedding   []float32
	Metadata    map[string]any
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
