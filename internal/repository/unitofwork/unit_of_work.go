package unitofwork

import (
	"context"

	"mentorlink-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	SessionRequestRepository() contract.SessionRequestRepository
	MatchRepository() contract.MatchRepository
	MessageRepository() contract.MessageRepository
	ProfileEmbeddingRepository() contract.ProfileEmbeddingRepository
}
