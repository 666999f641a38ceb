package dto

import "time"

type CreateSessionRequest struct {
	SessionId    string                 `json:"session_id" validate:"required"`
	RoomId       string                 `json:"room_id"`
	Participants []string               `json:"participants" validate:"required,min=1"`
	SessionType  string                 `json:"session_type"`
	Metadata     map[string]interface{} `json:"metadata"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
	Status    string `json:"status"`
}

type EndSessionRequest struct {
	SessionId  string `json:"session_id" validate:"required"`
	RequestId  string `json:"request_id"`
	UserId     string `json:"user_id"`
	Transcript string `json:"transcript"`
	Speaker    string `json:"speaker"`
}

type EndSessionResponse struct {
	SessionId string     `json:"session_id"`
	Status    string     `json:"status"`
	EndedAt   *time.Time `json:"ended_at"`
}

type AddParticipantRequest struct {
	SessionId     string `json:"session_id" validate:"required"`
	ParticipantId string `json:"participant_id" validate:"required"`
}

type SessionResponse struct {
	SessionId    string                 `json:"session_id"`
	RoomId       string                 `json:"room_id"`
	Participants []string               `json:"participants"`
	Status       string                 `json:"status"`
	SessionType  string                 `json:"session_type"`
	Metadata     map[string]interface{} `json:"metadata"`
	StartedAt    time.Time              `json:"started_at"`
	EndedAt      *time.Time             `json:"ended_at"`
}

type SessionMessageResponse struct {
	Id         string    `json:"id"`
	SessionId  string    `json:"session_id"`
	Timestamp  time.Time `json:"timestamp"`
	Transcript string    `json:"transcript"`
	Gist       string    `json:"gist"`
	Speaker    string    `json:"speaker"`
}
