package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-style-review-be/internal/entity"
	"ai-style-review-be/internal/repository/specification"
	"ai-style-review-be/internal/repository/unitofwork"
	"ai-style-review-be/pkg/database"
	"ai-style-review-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitVector(hot int) []float32 {
	v := make([]float32, embedding.Dimensions)
	v[hot] = 1
	return v
}

func TestReferenceExampleRepository(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "connect")

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
	category := "wordiness"

	before, err := uow.ReferenceExampleRepository().Count(ctx, specification.ByCategory{Category: category})
	require.NoError(t, err, "reference_examples must exist; run cmd/migrate first")

	t.Run("Search inside a rolled back transaction", func(t *testing.T) {
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		repo := uow.ReferenceExampleRepository()
		marker := "integration-" + uuid.NewString()
		err := repo.CreateBulk(ctx, []*entity.ReferenceExample{
			{Category: category, Pattern: "in order to", Replacement: "to", Guidance: marker, Source: entity.ReferenceSourceSeed, Embedding: unitVector(0)},
			{Category: category, Pattern: "due to the fact that", Replacement: "because", Guidance: marker, Source: entity.ReferenceSourceSeed, Embedding: unitVector(1)},
		})
		require.NoError(t, err)

		results, err := repo.SearchSimilarWithScore(ctx, unitVector(0), category, 5, 0.9)
		require.NoError(t, err)
		var found bool
		for _, r := range results {
			if r.Example.Guidance == marker {
				found = true
				assert.Equal(t, "in order to", r.Example.Pattern)
				assert.InDelta(t, 1.0, r.Similarity, 1e-6)
			}
		}
		assert.True(t, found, "inserted example should be the closest match")

		newest, err := repo.FindAll(ctx, specification.ByCategory{Category: category}, specification.Newest{}, specification.Pagination{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, newest, 2)
	})

	after, err := uow.ReferenceExampleRepository().Count(ctx, specification.ByCategory{Category: category})
	require.NoError(t, err)
	assert.Equal(t, before, after, "rollback must discard the inserts")
}

func TestReferenceExampleSoftDelete(t *testing.T) {
	_ = godotenv.Load("../../.env")
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}
	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()
	repo := uow.ReferenceExampleRepository()

	ex := &entity.ReferenceExample{Category: "terminology", Pattern: "e-mail", Replacement: "email", Source: entity.ReferenceSourceAccepted, Embedding: unitVector(2)}
	require.NoError(t, repo.Create(ctx, ex))
	require.NotEqual(t, uuid.Nil, ex.Id)

	require.NoError(t, repo.Delete(ctx, ex.Id))
	assert.Error(t, repo.Delete(ctx, ex.Id), "second delete finds no live row")

	live, err := repo.Count(ctx, specification.ByID{ID: ex.Id})
	require.NoError(t, err)
	assert.Zero(t, live)

	all, err := repo.Count(ctx, specification.IncludeDeleted{}, specification.ByID{ID: ex.Id})
	require.NoError(t, err)
	assert.EqualValues(t, 1, all)

	results, err := repo.SearchSimilarWithScore(ctx, unitVector(2), "terminology", 5, 0.99)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, ex.Id, r.Example.Id)
	}
}
