package service

import (
	"context"

	"mentorlink-be/internal/pkg/logger"
	"mentorlink-be/pkg/events"
	pktNats "mentorlink-be/pkg/nats"
)

// SignalDelivery defines how to push real-time updates to connected
// peers. Typically implemented by the WebSocket Hub.
type SignalDelivery interface {
	NotifyHandles(handles []string, event string, data interface{})
}

// NotificationService fans session lifecycle events back out to the
// participants still holding a signaling connection.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   SignalDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery SignalDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.session.ended", "session-notifier", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Listening for session ended events", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	raw, ok := payload["participants"]
	if !ok {
		return nil
	}

	var handles []string
	switch v := raw.(type) {
	case []string:
		handles = v
	case []interface{}:
		for _, item := range v {
			if handle, ok := item.(string); ok {
				handles = append(handles, handle)
			}
		}
	}
	if len(handles) == 0 {
		return nil
	}

	s.delivery.NotifyHandles(handles, "session:ended", payload)
	s.logger.Info("NotificationService", "Session ended fan-out delivered", map[string]interface{}{
		"session_id":   payload["session_id"],
		"participants": len(handles),
	})
	return nil
}
