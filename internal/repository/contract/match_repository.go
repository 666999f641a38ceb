package contract

import (
	"context"

	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/repository/specification"
)

type MatchRepository interface {
	Create(ctx context.Context, match *entity.Match) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Match, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Match, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
