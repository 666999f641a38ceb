package mapper

import (
	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ProfileEmbeddingMapper struct{}

func NewProfileEmbeddingMapper() *ProfileEmbeddingMapper {
	return &ProfileEmbeddingMapper{}
}

func (m *ProfileEmbeddingMapper) ToEntity(e *model.ProfileEmbedding) *entity.ProfileEmbedding {
	if e == nil {
		return nil
	}
	return &entity.ProfileEmbedding{
		Id:             e.Id,
		OwnerId:        e.OwnerId,
		TextHash:       e.TextHash,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *ProfileEmbeddingMapper) ToModel(e *entity.ProfileEmbedding) *model.ProfileEmbedding {
	if e == nil {
		return nil
	}
	return &model.ProfileEmbedding{
		Id:             e.Id,
		OwnerId:        e.OwnerId,
		TextHash:       e.TextHash,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
	}
}
