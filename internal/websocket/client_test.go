package websocket

import (
	"encoding/json"
	"testing"
)

func frame(t *testing.T, event string, data interface{}) WireMessage {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return WireMessage{Event: event, Data: raw}
}

func TestDispatchRegisterThenJoinRoom(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")

	c1.dispatch(frame(t, EventRegister, RegisterPayload{Email: "alice@example.com"}))
	if got := h.lookup("alice@example.com"); got != c1 {
		t.Fatal("register event did not bind handle")
	}

	c1.dispatch(frame(t, EventJoinRoom, JoinRoomPayload{Email: "alice@example.com", Room: "room-1"}))
	event, data := receive(t, c1)
	if event != EventSelfJoined {
		t.Fatalf("event = %s, want %s", event, EventSelfJoined)
	}
	if data["room"] != "room-1" {
		t.Fatalf("unexpected payload: %v", data)
	}
}

func TestDispatchOfferUsesSenderHandleAsFrom(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	c2 := newTestClient(h, "c2")

	c1.dispatch(frame(t, EventRegister, RegisterPayload{Email: "alice@example.com"}))
	c2.dispatch(frame(t, EventRegister, RegisterPayload{Email: "bob@example.com"}))

	c1.dispatch(frame(t, EventOfferCreated, map[string]interface{}{
		"offer": map[string]string{"sdp": "v=0"},
		"to":    "bob@example.com",
	}))

	event, data := receive(t, c2)
	if event != EventOfferReceived {
		t.Fatalf("event = %s, want %s", event, EventOfferReceived)
	}
	if data["from"] != "alice@example.com" {
		t.Fatalf("from = %v", data["from"])
	}
}

func TestDispatchConnectionRequestFallsBackToSenderHandle(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")
	c2 := newTestClient(h, "c2")

	c1.dispatch(frame(t, EventRegister, RegisterPayload{Email: "learner@example.com"}))
	c2.dispatch(frame(t, EventRegister, RegisterPayload{Email: "educator@example.com"}))

	// No explicit "from" in the payload: the bound handle is used.
	c1.dispatch(frame(t, EventRequestByEducator, map[string]string{"to": "educator@example.com"}))

	event, data := receive(t, c2)
	if event != EventRequestByEducator {
		t.Fatalf("event = %s, want %s", event, EventRequestByEducator)
	}
	if data["from"] != "learner@example.com" {
		t.Fatalf("from = %v", data["from"])
	}
}

func TestDispatchIgnoresUnknownEvent(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient(h, "c1")

	c1.dispatch(frame(t, "bogus-event", map[string]string{"x": "y"}))
	assertNoFrame(t, c1)
}
