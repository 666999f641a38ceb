package websocket

import "encoding/json"

// Wire event names. Inbound events come from connected peers, outbound
// events are what the hub emits back.
const (
	EventRegister          = "register"
	EventJoinRoom          = "join-room"
	EventOfferCreated      = "offer-created"
	EventAnswerCreated     = "answer-created"
	EventRequestByLearner  = "connection-request-by-learner"
	EventRequestByEducator = "connection-request-by-educator"
	EventRequestAccepted   = "request-accepted"

	EventUserJoined     = "user:joined"
	EventSelfJoined     = "self:joined"
	EventOfferReceived  = "offer-received"
	EventAnswerReceived = "answer-received"
	EventSessionEnded   = "session:ended"
)

// WireMessage is the envelope every signaling frame travels in.
type WireMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type RegisterPayload struct {
	Email string `json:"email"`
}

type JoinRoomPayload struct {
	Email string `json:"email"`
	Room  string `json:"room"`
}

type SignalPayload struct {
	Offer  json.RawMessage `json:"offer,omitempty"`
	Answer json.RawMessage `json:"answer,omitempty"`
	To     string          `json:"to"`
}

type ConnectionRequestPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type RequestAcceptedPayload struct {
	Room string `json:"room"`
	To   string `json:"to"`
}
