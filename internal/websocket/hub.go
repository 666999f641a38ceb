package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"mentorlink-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub tracks every live signaling connection, the presence registry
// (email handle -> connection) and room membership. Handles are
// last-write-wins: a second register for the same email silently
// replaces the first, matching reconnect behaviour on flaky networks.
type Hub struct {
	// All live connections.
	clients map[*Client]bool

	// Presence registry: email handle -> most recent connection.
	handles map[string]*Client

	// Room membership: room id -> members.
	rooms map[string]map[*Client]bool

	// Register requests from new connections.
	register chan *Client

	// Unregister requests from closing connections.
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance forwarding. Nil disables it.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		handles:    make(map[string]*Client),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Connection opened", map[string]interface{}{"connection_id": client.Id})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Only drop the handle if it still points at this connection;
				// a newer registration may have taken it over.
				if client.Email != "" && h.handles[client.Email] == client {
					delete(h.handles, client.Email)
				}
				if client.Room != "" {
					if members, ok := h.rooms[client.Room]; ok {
						delete(members, client)
						if len(members) == 0 {
							delete(h.rooms, client.Room)
						}
					}
				}
				close(client.Send)
				h.logger.Info("Hub", "Connection closed", map[string]interface{}{
					"connection_id": client.Id,
					"email":         client.Email,
				})
			}
			h.mu.Unlock()
		}
	}
}

// RegisterHandle binds an email handle to a connection. An existing
// binding for the same email is overwritten without notice.
func (h *Hub) RegisterHandle(c *Client, email string) {
	if email == "" {
		return
	}
	h.mu.Lock()
	c.Email = email
	h.handles[email] = c
	h.mu.Unlock()
	h.logger.Info("Hub", "Handle registered", map[string]interface{}{
		"email":         email,
		"connection_id": c.Id,
	})
}

// JoinRoom adds a connection to a room, tells existing members someone
// arrived and echoes the join back to the newcomer.
func (h *Hub) JoinRoom(c *Client, room string) {
	if room == "" {
		return
	}

	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	members := make([]*Client, 0, len(h.rooms[room]))
	for m := range h.rooms[room] {
		members = append(members, m)
	}
	h.rooms[room][c] = true
	c.Room = room
	email := c.Email
	h.mu.Unlock()

	for _, m := range members {
		h.deliver(m, EventUserJoined, map[string]interface{}{
			"email": email,
			"id":    c.Id,
		})
	}
	h.deliver(c, EventSelfJoined, map[string]interface{}{
		"email": email,
		"id":    c.Id,
		"room":  room,
	})
}

// RelayOffer forwards an SDP offer to the target handle. Unknown
// targets are dropped silently.
func (h *Hub) RelayOffer(from *Client, offer json.RawMessage, to string) {
	h.relaySignal(from, EventOfferReceived, "offer", offer, to)
}

// RelayAnswer forwards an SDP answer to the target handle.
func (h *Hub) RelayAnswer(from *Client, answer json.RawMessage, to string) {
	h.relaySignal(from, EventAnswerReceived, "answer", answer, to)
}

func (h *Hub) relaySignal(from *Client, event, field string, signal json.RawMessage, to string) {
	payload := map[string]interface{}{
		field:  signal,
		"from": h.handleOf(from),
	}
	target := h.lookup(to)
	if target == nil {
		h.forwardViaRedis(to, event, payload)
		return
	}
	h.deliver(target, event, payload)
}

// ForwardConnectionRequest relays a connection request (learner- or
// educator-initiated, the event name carries the direction) to the
// requested peer. Unknown recipients are a silent no-op.
func (h *Hub) ForwardConnectionRequest(event, from, to string) {
	payload := map[string]interface{}{"from": from}
	target := h.lookup(to)
	if target == nil {
		h.forwardViaRedis(to, event, payload)
		return
	}
	h.deliver(target, event, payload)
}

// AcceptRequest notifies the original requester that the request was
// accepted, handing over the room to meet in.
func (h *Hub) AcceptRequest(from *Client, room, to string) {
	payload := map[string]interface{}{
		"room": room,
		"from": h.handleOf(from),
	}
	target := h.lookup(to)
	if target == nil {
		h.forwardViaRedis(to, EventRequestAccepted, payload)
		return
	}
	h.deliver(target, EventRequestAccepted, payload)
}

// NotifyHandles pushes an event to each listed handle that is currently
// connected. Used by the event consumers for post-session fan-out.
func (h *Hub) NotifyHandles(handles []string, event string, data interface{}) {
	for _, handle := range handles {
		target := h.lookup(handle)
		if target == nil {
			h.forwardViaRedis(handle, event, data)
			continue
		}
		h.deliver(target, event, data)
	}
}

func (h *Hub) lookup(email string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.handles[email]
}

// handleOf reads a connection's bound handle under the lock; RegisterHandle
// may rewrite it concurrently.
func (h *Hub) handleOf(c *Client) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return c.Email
}

func (h *Hub) deliver(target *Client, event string, data interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal outbound event", map[string]interface{}{"event": event, "error": err.Error()})
		return
	}

	// Sending under the read lock excludes Run's close(Send), which holds
	// the write lock while tearing a connection down.
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[target] {
		return
	}

	select {
	case target.Send <- payload:
	default:
		h.logger.Warn("Hub", "Send buffer full, dropping connection", map[string]interface{}{"email": target.Email})
		go func() { h.unregister <- target }()
	}
}

// forwardViaRedis hands a targeted event to other instances. With no
// Redis configured the event is dropped, which keeps unknown-recipient
// semantics a silent no-op.
func (h *Hub) forwardViaRedis(handle, event string, data interface{}) {
	if h.rdb == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"target_handle": handle,
		"event":         event,
		"data":          data,
	})
	if err != nil {
		return
	}
	h.rdb.Publish(context.Background(), "signaling_events", payload)
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "signaling_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetHandle string          `json:"target_handle"`
			Event        string          `json:"event"`
			Data         json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		target := h.lookup(payload.TargetHandle)
		if target == nil {
			continue
		}
		h.deliver(target, payload.Event, payload.Data)
	}
}
