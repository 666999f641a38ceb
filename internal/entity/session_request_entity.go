package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ItemTypeSession = "SESSION"
	ItemTypeMessage = "MESSAGE"

	RequestStatusActive = "Active"
	RequestStatusEnded  = "Ended"
)

// SessionRequest is the polymorphic per-request record. A SESSION-tagged row
// tracks lifecycle status for listing a user's history; MESSAGE-tagged rows
// carry transcript/gist payloads. Rows sharing a RequestId form one logical
// partition, so a session and its derived messages are retrieved together.
// Readers must filter by ItemType.
type SessionRequest struct {
	Id        uuid.UUID
	RequestId string
	ItemType  string

	// SESSION fields
	Status string

	// Shared
	RoomId    string
	UserId    string
	SessionId string

	// MESSAGE fields
	Transcript string
	Gist       string
	Speaker    string
	Timestamp  time.Time

	CreatedAt time.Time
	UpdatedAt *time.Time
}
