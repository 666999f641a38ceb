package events

import "time"

// SessionEnded is published on the NATS bus when a learning session has been
// marked ended, so interested consumers (notification fan-out, analytics) can
// react without blocking the end-of-call API path.
type SessionEnded struct {
	SessionId    string
	RoomId       string
	Participants []string
	EndedAt      time.Time
}

func (e SessionEnded) EventType() string {
	return "session.ended"
}

func (e SessionEnded) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":   e.SessionId,
		"room_id":      e.RoomId,
		"participants": e.Participants,
		"ended_at":     e.EndedAt.Format(time.RFC3339),
	}
}

func (e SessionEnded) Timestamp() time.Time {
	return e.EndedAt
}
