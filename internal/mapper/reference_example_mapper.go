package mapper

import (
	"encoding/json"
	"time"

	"ai-style-review-be/internal/entity"
	"ai-style-review-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReferenceExampleMapper struct{}

func NewReferenceExampleMapper() *ReferenceExampleMapper {
	return &ReferenceExampleMapper{}
}

func (m *ReferenceExampleMapper) ToEntity(e *model.ReferenceExample) *entity.ReferenceExample {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]any
	if len(e.Metadata) > 0 {
		// unreadable metadata is dropped rather than failing the search
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.ReferenceExample{
		Id:          e.Id,
		Category:    e.Category,
		Pattern:     e.Pattern,
		Replacement: e.Replacement,
		Example:     e.Example,
		Guidance:    e.Guidance,
		Source:      e.Source,
		Embedding:   e.Embedding.Slice(),
		Metadata:    metadata,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   e.DeletedAt.Valid,
	}
}

func (m *ReferenceExampleMapper) ToModel(e *entity.ReferenceExample) *model.ReferenceExample {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var metadata datatypes.JSON
	if len(e.Metadata) > 0 {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.ReferenceExample{
		Id:          e.Id,
		Category:    e.Category,
		Pattern:     e.Pattern,
		Replacement: e.Replacement,
		Example:     e.Example,
		Guidance:    e.Guidance,
		Source:      e.Source,
		Embedding:   pgvector.NewVector(e.Embedding),
		Metadata:    metadata,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}
