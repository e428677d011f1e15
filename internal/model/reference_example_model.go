package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReferenceExample struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category    string          `gorm:"type:varchar(32);not null;index"`
	Pattern     string          `gorm:"type:text"`
	Replacement string          `gorm:"type:text"`
	Example     string          `gorm:"type:text"`
	Guidance    string          `gorm:"type:text"`
	Source      string          `gorm:"type:varchar(16);not null;default:'seed'"`
	Embedding   pgvector.Vector `gorm:"type:vector(768)"`
	Metadata    datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

func (ReferenceExample) TableName() string {
	return "reference_examples"
}
