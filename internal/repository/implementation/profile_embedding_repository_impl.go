package implementation

import (
	"context"
	"errors"

	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/mapper"
	"mentorlink-be/internal/model"
	"mentorlink-be/internal/repository/contract"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

type ProfileEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileEmbeddingMapper
}

func NewProfileEmbeddingRepository(db *gorm.DB) contract.ProfileEmbeddingRepository {
	return &ProfileEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileEmbeddingMapper(),
	}
}

func (r *ProfileEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.ProfileEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// Another request may have cached the same text concurrently.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil
		}
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProfileEmbeddingRepositoryImpl) FindByTextHash(ctx context.Context, textHash string) (*entity.ProfileEmbedding, error) {
	var m model.ProfileEmbedding
	err := r.db.WithContext(ctx).Where("text_hash = ?", textHash).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
