package dto

import "time"

// SessionEndMessage is the payload travelling through the in-process
// pipeline when a session finishes and its transcript needs processing.
type SessionEndMessage struct {
	SessionId  string    `json:"session_id"`
	RequestId  string    `json:"request_id"`
	UserId     string    `json:"user_id"`
	RoomId     string    `json:"room_id"`
	Transcript string    `json:"transcript"`
	Speaker    string    `json:"speaker"`
	Timestamp  time.Time `json:"timestamp"`
}

// PipelineResult reports the outcome of one pipeline invocation.
type PipelineResult struct {
	SessionId string `json:"session_id,omitempty"`
	RequestId string `json:"request_id,omitempty"`
	Gist      string `json:"gist,omitempty"`
	Error     string `json:"error,omitempty"`
}
