package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mentorlink-be/internal/dto"
	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/repository/contract"
	"mentorlink-be/internal/repository/specification"
	"mentorlink-be/pkg/gist"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPipelineService interface {
	Consume(ctx context.Context) error
}

// pipelineService turns end-of-session transcripts into summarized
// message records. Steps run against the repositories directly, there
// is no transaction spanning them: a retry after a mid-pipeline crash
// redoes the earlier steps, which are all safe to repeat.
type pipelineService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	sessionRepo contract.SessionRepository
	requestRepo contract.SessionRequestRepository
	messageRepo contract.MessageRepository
	summarizer  gist.Summarizer
}

func NewPipelineService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessionRepo contract.SessionRepository,
	requestRepo contract.SessionRequestRepository,
	messageRepo contract.MessageRepository,
	summarizer gist.Summarizer,
) IPipelineService {
	return &pipelineService{
		pubSub:      pubSub,
		topicName:   topicName,
		sessionRepo: sessionRepo,
		requestRepo: requestRepo,
		messageRepo: messageRepo,
		summarizer:  summarizer,
	}
}

func (ps *pipelineService) Consume(ctx context.Context) error {
	messages, err := ps.pubSub.Subscribe(ctx, ps.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ps.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ps *pipelineService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SessionEndMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal pipeline message: %v", err)
		msg.Ack() // malformed payloads never become valid, no retry
		return
	}

	result, retriable := ps.Process(ctx, payload)
	if result.Error != "" {
		log.Printf("[WARN] Pipeline rejected message for session %s: %s", payload.SessionId, result.Error)
		msg.Ack() // rejected payloads are acked, retrying cannot fix them
		return
	}
	if retriable {
		msg.Nack()
		return
	}

	log.Printf("[INFO] Pipeline processed session %s (request %s)", result.SessionId, result.RequestId)
	msg.Ack()
}

// Process runs the pipeline for one payload. The returned bool reports
// whether a failure is retriable (infrastructure error) as opposed to a
// terminal validation rejection carried in the result.
func (ps *pipelineService) Process(ctx context.Context, payload dto.SessionEndMessage) (*dto.PipelineResult, bool) {
	if payload.SessionId == "" || payload.Transcript == "" || payload.UserId == "" ||
		payload.Speaker == "" || payload.RoomId == "" {
		return &dto.PipelineResult{Error: "Missing required data"}, false
	}

	// A request id equal to the user id is a client-side placeholder,
	// treat it the same as no id at all.
	requestId := payload.RequestId
	if requestId == "" || requestId == payload.UserId {
		requestId = uuid.NewString()
	}

	session, err := ps.sessionRepo.FindOne(ctx, specification.Filter("id", payload.SessionId))
	if err != nil {
		log.Printf("[ERROR] Pipeline failed to load session %s: %v", payload.SessionId, err)
		return &dto.PipelineResult{}, true
	}
	// Redelivery re-marks an already-ended session, refreshing EndedAt.
	if session != nil {
		now := time.Now()
		session.Status = entity.SessionStatusEnded
		session.EndedAt = &now
		if err := ps.sessionRepo.Update(ctx, session); err != nil {
			log.Printf("[ERROR] Pipeline failed to close session %s: %v", payload.SessionId, err)
			return &dto.PipelineResult{}, true
		}
	}

	if err := ps.requestRepo.UpdateStatusByRequestId(ctx, requestId, entity.RequestStatusEnded); err != nil {
		log.Printf("[ERROR] Pipeline failed to end request %s: %v", requestId, err)
		return &dto.PipelineResult{}, true
	}

	previousGist := ""
	latest, err := ps.messageRepo.FindLatestBySessionId(ctx, payload.SessionId)
	if err != nil {
		log.Printf("[ERROR] Pipeline failed to load latest message for session %s: %v", payload.SessionId, err)
		return &dto.PipelineResult{}, true
	}
	if latest != nil {
		previousGist = latest.Gist
	}

	summary := ps.summarizer.Summarize(ctx, payload.Transcript, previousGist)

	timestamp := payload.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	// Each delivery appends fresh rows. A redelivered message produces a
	// duplicate transcript entry instead of silently merging.
	request := entity.SessionRequest{
		Id:         uuid.New(),
		RequestId:  requestId,
		ItemType:   entity.ItemTypeMessage,
		Status:     entity.RequestStatusEnded,
		RoomId:     payload.RoomId,
		UserId:     payload.UserId,
		SessionId:  payload.SessionId,
		Transcript: payload.Transcript,
		Gist:       summary,
		Speaker:    payload.Speaker,
		Timestamp:  timestamp,
		CreatedAt:  time.Now(),
	}
	if err := ps.requestRepo.Create(ctx, &request); err != nil {
		log.Printf("[ERROR] Pipeline failed to persist request record: %v", err)
		return &dto.PipelineResult{}, true
	}

	msgRecord := entity.Message{
		Id:         uuid.New(),
		SessionId:  payload.SessionId,
		Timestamp:  timestamp,
		Transcript: payload.Transcript,
		Gist:       summary,
		Speaker:    payload.Speaker,
		CreatedAt:  time.Now(),
	}
	if err := ps.messageRepo.Create(ctx, &msgRecord); err != nil {
		log.Printf("[ERROR] Pipeline failed to persist message: %v", err)
		return &dto.PipelineResult{}, true
	}

	return &dto.PipelineResult{
		SessionId: payload.SessionId,
		RequestId: requestId,
		Gist:      summary,
	}, false
}
