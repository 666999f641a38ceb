package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type ProfileEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId        uuid.UUID       `gorm:"type:uuid;index"`
	TextHash       string          `gorm:"type:text;not null;uniqueIndex"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 / nomic dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (ProfileEmbedding) TableName() string {
	return "profile_embeddings"
}
