package contract

import (
	"context"

	"github.com/google/uuid"

	"ai-style-review-be/internal/entity"
	"ai-style-review-be/internal/repository/specification"
)

// ScoredReferenceExample wraps a ReferenceExample with its cosine similarity
type ScoredReferenceExample struct {
	Example    *entity.ReferenceExample
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type ReferenceExampleRepository interface {
	Create(ctx context.Context, example *entity.ReferenceExample) error
	CreateBulk(ctx context.Context, examples []*entity.ReferenceExample) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReferenceExample, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SearchSimilarWithScore returns examples of one category ordered by
	// similarity, dropping those below threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, category string, limit int, threshold float64) ([]*ScoredReferenceExample, error)
}
