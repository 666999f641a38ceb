package contract

import (
	"context"

	"mentorlink-be/internal/entity"
)

type ProfileEmbeddingRepository interface {
	// Create persists an embedding row. A concurrent insert of the same
	// text hash is tolerated: the unique violation is swallowed and the
	// call reports success.
	Create(ctx context.Context, embedding *entity.ProfileEmbedding) error
	FindByTextHash(ctx context.Context, textHash string) (*entity.ProfileEmbedding, error)
}
