package contract

import (
	"context"

	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/repository/specification"
)

type SessionRequestRepository interface {
	Create(ctx context.Context, request *entity.SessionRequest) error
	Update(ctx context.Context, request *entity.SessionRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionRequest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateStatusByRequestId flips the lifecycle status of every row sharing
	// a request correlation id. Matching zero rows is not an error.
	UpdateStatusByRequestId(ctx context.Context, requestId, status string) error
}
