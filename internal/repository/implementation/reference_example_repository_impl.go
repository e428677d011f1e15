package implementation

import (
	"context"

	"ai-style-review-be/internal/entity"
	"ai-style-review-be/internal/mapper"
	"ai-style-review-be/internal/model"
	"ai-style-review-be/internal/repository/contract"
	"ai-style-review-be/internal/repository/scope"
	"ai-style-review-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const seedBatchSize = 100

type ReferenceExampleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReferenceExampleMapper
}

func NewReferenceExampleRepository(db *gorm.DB) contract.ReferenceExampleRepository {
	return &ReferenceExampleRepositoryImpl{
		db:     db,
		mapper: mapper.NewReferenceExampleMapper(),
	}
}

func (r *ReferenceExampleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReferenceExampleRepositoryImpl) Create(ctx context.Context, example *entity.ReferenceExample) error {
	m := r.mapper.ToModel(example)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*example = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReferenceExampleRepositoryImpl) CreateBulk(ctx context.Context, examples []*entity.ReferenceExample) error {
	if len(examples) == 0 {
		return nil
	}
	models := make([]*model.ReferenceExample, len(examples))
	for i, e := range examples {
		models[i] = r.mapper.ToModel(e)
	}
	return r.db.WithContext(ctx).CreateInBatches(models, seedBatchSize).Error
}

func (r *ReferenceExampleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReferenceExample, error) {
	var models []*model.ReferenceExample
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ReferenceExample, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ReferenceExampleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ReferenceExample{}).Count(&count).Error
	return count, err
}

// Delete soft-deletes one example. It reports gorm.ErrRecordNotFound when no
// live row matched.
func (r *ReferenceExampleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.ReferenceExample{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReferenceExampleRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, category string, limit int, threshold float64) ([]*contract.ScoredReferenceExample, error) {
	if limit <= 0 {
		limit = 3
	}

	// pgvector cosine distance is 1 - cosine_similarity
	type result struct {
		model.ReferenceExample
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("reference_examples").
		Select("reference_examples.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Scopes(scope.ExcludeSoftDelete).
		Where("category = ?", category).
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredReferenceExample, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredReferenceExample{
			Example:    r.mapper.ToEntity(&res.ReferenceExample),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
