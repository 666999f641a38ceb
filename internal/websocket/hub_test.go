package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestHub() *Hub {
	h := NewHub(nil, nopLogger{})
	go h.Run()
	return h
}

func newTestClient(h *Hub, id string) *Client {
	c := &Client{
		Hub:  h,
		Id:   id,
		Send: make(chan []byte, 16),
	}
	h.register <- c

	// Wait for the run loop to admit the connection before using it.
	deadline := time.Now().Add(time.Second)
	for {
		h.mu.RLock()
		admitted := h.clients[c]
		h.mu.RUnlock()
		if admitted {
			return c
		}
		if time.Now().After(deadline) {
			panic("test client never registered")
		}
		time.Sleep(time.Millisecond)
	}
}

func receive(t *testing.T, c *Client) (string, map[string]interface{}) {
	t.Helper()
	select {
	case raw := <-c.Send:
		var envelope struct {
			Event string                 `json:"event"`
			Data  map[string]interface{} `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("bad frame: %v", err)
		}
		return envelope.Event, envelope.Data
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return "", nil
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.Send:
		t.Fatalf("unexpected frame: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegisterHandleOverwritesPreviousConnection(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	c2 := newTestClient(h, "c2")

	h.RegisterHandle(c1, "alice@example.com")
	h.RegisterHandle(c2, "alice@example.com")

	if got := h.lookup("alice@example.com"); got != c2 {
		t.Fatalf("lookup returned %v, want newest connection", got)
	}
}

func TestUnregisterKeepsNewerHandleBinding(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	c2 := newTestClient(h, "c2")

	h.RegisterHandle(c1, "alice@example.com")
	h.RegisterHandle(c2, "alice@example.com")

	// The stale connection going away must not evict the new binding.
	h.unregister <- c1
	time.Sleep(20 * time.Millisecond)

	if got := h.lookup("alice@example.com"); got != c2 {
		t.Fatalf("lookup returned %v after stale unregister, want newest connection", got)
	}
}

func TestJoinRoomNotifiesMembersAndEchoesSelf(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	c2 := newTestClient(h, "c2")

	h.RegisterHandle(c1, "alice@example.com")
	h.RegisterHandle(c2, "bob@example.com")

	h.JoinRoom(c1, "room-1")
	event, data := receive(t, c1)
	if event != EventSelfJoined {
		t.Fatalf("event = %s, want %s", event, EventSelfJoined)
	}
	if data["room"] != "room-1" || data["email"] != "alice@example.com" {
		t.Fatalf("unexpected self:joined payload: %v", data)
	}

	h.JoinRoom(c2, "room-1")

	event, data = receive(t, c1)
	if event != EventUserJoined {
		t.Fatalf("event = %s, want %s", event, EventUserJoined)
	}
	if data["email"] != "bob@example.com" {
		t.Fatalf("unexpected user:joined payload: %v", data)
	}

	event, _ = receive(t, c2)
	if event != EventSelfJoined {
		t.Fatalf("event = %s, want %s", event, EventSelfJoined)
	}
}

func TestRelayOfferReachesTargetWithSenderHandle(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	c2 := newTestClient(h, "c2")

	h.RegisterHandle(c1, "alice@example.com")
	h.RegisterHandle(c2, "bob@example.com")

	offer := json.RawMessage(`{"sdp":"v=0"}`)
	h.RelayOffer(c1, offer, "bob@example.com")

	event, data := receive(t, c2)
	if event != EventOfferReceived {
		t.Fatalf("event = %s, want %s", event, EventOfferReceived)
	}
	if data["from"] != "alice@example.com" {
		t.Fatalf("from = %v, want sender handle", data["from"])
	}
	if _, ok := data["offer"]; !ok {
		t.Fatal("offer payload missing")
	}
}

func TestRelayToUnknownHandleIsSilentNoOp(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	h.RegisterHandle(c1, "alice@example.com")

	h.RelayOffer(c1, json.RawMessage(`{}`), "nobody@example.com")
	h.ForwardConnectionRequest(EventRequestByLearner, "alice@example.com", "nobody@example.com")
	h.AcceptRequest(c1, "room-1", "nobody@example.com")

	assertNoFrame(t, c1)
}

func TestForwardConnectionRequestDeliversDirectionEvent(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	c2 := newTestClient(h, "c2")

	h.RegisterHandle(c1, "learner@example.com")
	h.RegisterHandle(c2, "educator@example.com")

	h.ForwardConnectionRequest(EventRequestByLearner, "learner@example.com", "educator@example.com")

	event, data := receive(t, c2)
	if event != EventRequestByLearner {
		t.Fatalf("event = %s, want %s", event, EventRequestByLearner)
	}
	if data["from"] != "learner@example.com" {
		t.Fatalf("from = %v", data["from"])
	}
}

func TestAcceptRequestHandsOverRoom(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	c2 := newTestClient(h, "c2")

	h.RegisterHandle(c1, "educator@example.com")
	h.RegisterHandle(c2, "learner@example.com")

	h.AcceptRequest(c1, "room-9", "learner@example.com")

	event, data := receive(t, c2)
	if event != EventRequestAccepted {
		t.Fatalf("event = %s, want %s", event, EventRequestAccepted)
	}
	if data["room"] != "room-9" || data["from"] != "educator@example.com" {
		t.Fatalf("unexpected payload: %v", data)
	}
}

func TestConcurrentRegisterRelayAndDisconnect(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	c2 := newTestClient(h, "c2")

	h.RegisterHandle(c1, "alice@example.com")
	h.RegisterHandle(c2, "bob@example.com")

	// Drain bob so relays never block on a full buffer.
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-c2.Send:
			case <-done:
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			h.RegisterHandle(c1, "alice@example.com")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			h.RelayOffer(c1, json.RawMessage(`{}`), "bob@example.com")
		}
	}()
	go func() {
		defer wg.Done()
		ghost := newTestClient(h, "ghost")
		h.unregister <- ghost
		for i := 0; i < 200; i++ {
			h.NotifyHandles([]string{"bob@example.com"}, EventSessionEnded, map[string]interface{}{"i": i})
		}
	}()
	wg.Wait()
	close(done)

	if got := h.lookup("alice@example.com"); got != c1 {
		t.Fatalf("handle binding lost during concurrent traffic")
	}
}

func TestNotifyHandlesSkipsDisconnectedPeers(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	h.RegisterHandle(c1, "alice@example.com")

	h.NotifyHandles([]string{"alice@example.com", "ghost@example.com"}, EventSessionEnded, map[string]interface{}{
		"session_id": "sess-1",
	})

	event, data := receive(t, c1)
	if event != EventSessionEnded {
		t.Fatalf("event = %s, want %s", event, EventSessionEnded)
	}
	if data["session_id"] != "sess-1" {
		t.Fatalf("unexpected payload: %v", data)
	}
	assertNoFrame(t, c1)
}
