package contract

import (
	"context"

	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/repository/specification"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindLatestBySessionId returns the most recent transcript chunk for a
	// session, or nil when the session has none yet.
	FindLatestBySessionId(ctx context.Context, sessionId string) (*entity.Message, error)
}
