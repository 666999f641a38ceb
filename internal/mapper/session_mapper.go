package mapper

import (
	"time"

	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// Session

func (m *SessionMapper) SessionToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Session{
		Id:           s.Id,
		RoomId:       s.RoomId,
		Participants: jsonToStrings(s.Participants),
		Status:       s.Status,
		SessionType:  s.SessionType,
		Metadata:     jsonToMap(s.Metadata),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *SessionMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Session{
		Id:           s.Id,
		RoomId:       s.RoomId,
		Participants: stringsToJSON(s.Participants),
		Status:       s.Status,
		SessionType:  s.SessionType,
		Metadata:     mapToJSON(s.Metadata),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

// SessionRequest

func (m *SessionMapper) RequestToEntity(r *model.SessionRequest) *entity.SessionRequest {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.SessionRequest{
		Id:         r.Id,
		RequestId:  r.RequestId,
		ItemType:   r.ItemType,
		Status:     r.Status,
		RoomId:     r.RoomId,
		UserId:     r.UserId,
		SessionId:  r.SessionId,
		Transcript: r.Transcript,
		Gist:       r.Gist,
		Speaker:    r.Speaker,
		Timestamp:  r.Timestamp,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *SessionMapper) RequestToModel(r *entity.SessionRequest) *model.SessionRequest {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.SessionRequest{
		Id:         r.Id,
		RequestId:  r.RequestId,
		ItemType:   r.ItemType,
		Status:     r.Status,
		RoomId:     r.RoomId,
		UserId:     r.UserId,
		SessionId:  r.SessionId,
		Transcript: r.Transcript,
		Gist:       r.Gist,
		Speaker:    r.Speaker,
		Timestamp:  r.Timestamp,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

// Message

func (m *SessionMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		Timestamp:  msg.Timestamp,
		Transcript: msg.Transcript,
		Gist:       msg.Gist,
		Speaker:    msg.Speaker,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *SessionMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		Timestamp:  msg.Timestamp,
		Transcript: msg.Transcript,
		Gist:       msg.Gist,
		Speaker:    msg.Speaker,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *SessionMapper) SessionsToEntities(sessions []*model.Session) []*entity.Session {
	out := make([]*entity.Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, m.SessionToEntity(s))
	}
	return out
}

func (m *SessionMapper) RequestsToEntities(requests []*model.SessionRequest) []*entity.SessionRequest {
	out := make([]*entity.SessionRequest, 0, len(requests))
	for _, r := range requests {
		out = append(out, m.RequestToEntity(r))
	}
	return out
}

func (m *SessionMapper) MessagesToEntities(messages []*model.Message) []*entity.Message {
	out := make([]*entity.Message, 0, len(messages))
	for _, msg := range messages {
		out = append(out, m.MessageToEntity(msg))
	}
	return out
}
