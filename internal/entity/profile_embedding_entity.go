package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProfileEmbedding is a cached embedding of a candidate's skill/topic text,
// keyed by a hash of the exact text so any profile edit naturally produces a
// fresh entry.
type ProfileEmbedding struct {
	Id             uuid.UUID
	OwnerId        uuid.UUID
	TextHash       string
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
}
