package retrieval

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ai-style-review-be/internal/entity"
	"ai-style-review-be/internal/repository/contract"
	"ai-style-review-be/pkg/embedding"
	"ai-style-review-be/pkg/rules"
)

// VectorStore keeps references in Postgres and ranks them with pgvector.
type VectorStore struct {
	repo     contract.ReferenceExampleRepository
	embedder embedding.EmbeddingProvider
	minScore float64
	source   string
}

func NewVectorStore(repo contract.ReferenceExampleRepository, embedder embedding.EmbeddingProvider, minScore float64) *VectorStore {
	return &VectorStore{repo: repo, embedder: embedder, minScore: minScore, source: entity.ReferenceSourceAccepted}
}

// WithSource labels examples indexed through this store.
func (s *VectorStore) WithSource(source string) *VectorStore {
	cp := *s
	cp.source = source
	return &cp
}

func (s *VectorStore) Retrieve(ctx context.Context, q Query) ([]Snippet, error) {
	vec, err := s.embedder.Generate(ctx, q.Text, embedding.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := s.repo.SearchSimilarWithScore(ctx, vec, string(q.Category), topK(q), s.minScore)
	if err != nil {
		return nil, fmt.Errorf("search references: %w", err)
	}
	out := make([]Snippet, 0, len(results))
	for _, r := range results {
		out = append(out, Snippet{
			Category:    rules.Category(r.Example.Category),
			Pattern:     r.Example.Pattern,
			Replacement: r.Example.Replacement,
			Example:     r.Example.Example,
			Guidance:    r.Example.Guidance,
			Score:       r.Similarity,
		})
	}
	return out, nil
}

func (s *VectorStore) Index(ctx context.Context, ex Example) error {
	e, err := s.toEntity(ctx, ex)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, e)
}

// IndexAll embeds and stores examples in one batch.
func (s *VectorStore) IndexAll(ctx context.Context, examples []Example) error {
	entities := make([]*entity.ReferenceExample, 0, len(examples))
	for _, ex := range examples {
		e, err := s.toEntity(ctx, ex)
		if err != nil {
			return err
		}
		entities = append(entities, e)
	}
	return s.repo.CreateBulk(ctx, entities)
}

func (s *VectorStore) toEntity(ctx context.Context, ex Example) (*entity.ReferenceExample, error) {
	if err := ex.Validate(); err != nil {
		return nil, err
	}
	vec, err := s.embedder.Generate(ctx, ex.document()+" "+ex.Guidance, embedding.TaskDocument)
	if err != nil {
		return nil, fmt.Errorf("embed example: %w", err)
	}
	return &entity.ReferenceExample{
		Id:          uuid.New(),
		Category:    string(ex.Category),
		Pattern:     ex.Pattern,
		Replacement: ex.Replacement,
		Example:     ex.Example,
		Guidance:    ex.Guidance,
		Source:      s.source,
		Embedding:   vec,
	}, nil
}
