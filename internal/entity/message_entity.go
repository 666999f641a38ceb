package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is one append-only transcript segment for a session. Gist stays
// empty until the summary pipeline has run for that segment.
type Message struct {
	Id         uuid.UUID
	SessionId  string
	Timestamp  time.Time
	Transcript string
	Gist       string
	Speaker    string
	CreatedAt  time.Time
}
