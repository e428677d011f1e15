package specification

import (
	"gorm.io/gorm"

	"ai-style-review-be/internal/repository/scope"
)

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}

// Newest orders by creation time, most recent first.
type Newest struct{}

func (Newest) Apply(db *gorm.DB) *gorm.DB {
	return scope.OrderByCreatedDesc(db)
}

// IncludeDeleted lifts the soft-delete filter.
type IncludeDeleted struct{}

func (IncludeDeleted) Apply(db *gorm.DB) *gorm.DB {
	return scope.WithSoftDelete(db)
}
