package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mentorlink-be/internal/dto"
	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/pkg/logger"
	"mentorlink-be/internal/repository/specification"
	"mentorlink-be/internal/repository/unitofwork"
	"mentorlink-be/pkg/events"
	pktNats "mentorlink-be/pkg/nats"
	"mentorlink-be/pkg/utils"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	End(ctx context.Context, req *dto.EndSessionRequest) (*dto.EndSessionResponse, error)
	AddParticipant(ctx context.Context, req *dto.AddParticipantRequest) (*dto.SessionResponse, error)
	GetAll(ctx context.Context, userId string) ([]*dto.SessionResponse, error)
	GetById(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	GetMessages(ctx context.Context, sessionId string) ([]*dto.SessionMessageResponse, error)
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// Create opens a session and records its bookkeeping row in one
// transaction, so either both exist or neither does.
func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if len(req.Participants) == 0 {
		return nil, errors.New("participants must not be empty")
	}

	roomId := req.RoomId
	if roomId == "" {
		roomId = utils.GenerateRoomID(9)
	}

	now := time.Now()
	session := entity.Session{
		Id:           req.SessionId,
		RoomId:       roomId,
		Participants: req.Participants,
		Status:       entity.SessionStatusActive,
		SessionType:  req.SessionType,
		Metadata:     req.Metadata,
		StartedAt:    now,
		CreatedAt:    now,
	}

	firstParticipant := req.Participants[0]
	request := entity.SessionRequest{
		Id:        uuid.New(),
		RequestId: req.SessionId,
		ItemType:  entity.ItemTypeSession,
		Status:    entity.RequestStatusActive,
		RoomId:    roomId,
		UserId:    firstParticipant,
		SessionId: req.SessionId,
		Timestamp: now,
		CreatedAt: now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	if err := uow.SessionRequestRepository().Create(ctx, &request); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{
		SessionId: session.Id,
		Status:    session.Status,
	}, nil
}

// End marks a session finished and kicks off transcript processing.
// Ending an already-ended session simply overwrites the end timestamp.
func (s *sessionService) End(ctx context.Context, req *dto.EndSessionRequest) (*dto.EndSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.Filter("id", req.SessionId))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	now := time.Now()
	session.Status = entity.SessionStatusEnded
	session.EndedAt = &now
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	// Hand the transcript to the async pipeline. Processing happens out
	// of band, the caller only learns the session is closing.
	msg := dto.SessionEndMessage{
		SessionId:  session.Id,
		RequestId:  req.RequestId,
		UserId:     req.UserId,
		RoomId:     session.RoomId,
		Transcript: req.Transcript,
		Speaker:    req.Speaker,
		Timestamp:  now,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	if s.publisherService != nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Error("SessionService", "Failed to publish session end message", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.SessionEnded{
			SessionId:    session.Id,
			RoomId:       session.RoomId,
			Participants: session.Participants,
			EndedAt:      now,
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("SessionService", "Failed to publish session ended event", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}

	return &dto.EndSessionResponse{
		SessionId: session.Id,
		Status:    session.Status,
		EndedAt:   session.EndedAt,
	}, nil
}

// AddParticipant appends to the participant list as-is. Rejoining peers
// show up twice, the list is a join log rather than a set.
func (s *sessionService) AddParticipant(ctx context.Context, req *dto.AddParticipantRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.Filter("id", req.SessionId))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	session.Participants = append(session.Participants, req.ParticipantId)
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return sessionToResponse(session), nil
}

// GetAll lists the sessions a user opened, resolved through the SESSION
// request rows which carry the user_id index.
func (s *sessionService) GetAll(ctx context.Context, userId string) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requests, err := uow.SessionRequestRepository().FindAll(ctx,
		specification.ByUserId{UserId: userId},
		specification.ByItemType{ItemType: entity.ItemTypeSession},
	)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return []*dto.SessionResponse{}, nil
	}

	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.SessionId)
	}

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.BySessionIds{Ids: ids},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, sessionToResponse(session))
	}
	return result, nil
}

func (s *sessionService) GetById(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.Filter("id", sessionId))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) GetMessages(ctx context.Context, sessionId string) ([]*dto.SessionMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Most recent first, the newest gist is the one readers want.
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.BySessionId{SessionId: sessionId},
		specification.OrderBy{Field: "timestamp", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionMessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, &dto.SessionMessageResponse{
			Id:         m.Id.String(),
			SessionId:  m.SessionId,
			Timestamp:  m.Timestamp,
			Transcript: m.Transcript,
			Gist:       m.Gist,
			Speaker:    m.Speaker,
		})
	}
	return result, nil
}

func sessionToResponse(session *entity.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		SessionId:    session.Id,
		RoomId:       session.RoomId,
		Participants: session.Participants,
		Status:       session.Status,
		SessionType:  session.SessionType,
		Metadata:     session.Metadata,
		StartedAt:    session.StartedAt,
		EndedAt:      session.EndedAt,
	}
}
