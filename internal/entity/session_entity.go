package entity

import "time"

const (
	SessionStatusActive = "active"
	SessionStatusEnded  = "ended"
)

// Session tracks a learning call's lifecycle. A session is never active once
// EndedAt is set, and is never deleted in normal operation.
type Session struct {
	Id           string // client-supplied session id
	RoomId       string
	Participants []string
	Status       string
	SessionType  string
	Metadata     map[string]interface{}
	StartedAt    time.Time
	EndedAt      *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
