package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 65536
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Connection id handed out at upgrade time.
	Id string

	// Presence handle bound via the register event. Empty until then.
	Email string

	// Room this connection has joined, empty if none.
	Room string

	// Buffered channel of outbound messages.
	Send chan []byte
}

// readPump pumps frames from the websocket connection into the hub.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error for connection %s: %v", c.Id, err)
			}
			break
		}

		var msg WireMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			// Malformed frames are dropped, the connection stays up.
			continue
		}
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg WireMessage) {
	switch msg.Event {
	case EventRegister:
		var p RegisterPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		c.Hub.RegisterHandle(c, p.Email)

	case EventJoinRoom:
		var p JoinRoomPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		if p.Email != "" {
			c.Hub.RegisterHandle(c, p.Email)
		}
		c.Hub.JoinRoom(c, p.Room)

	case EventOfferCreated:
		var p SignalPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		c.Hub.RelayOffer(c, p.Offer, p.To)

	case EventAnswerCreated:
		var p SignalPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		c.Hub.RelayAnswer(c, p.Answer, p.To)

	case EventRequestByLearner, EventRequestByEducator:
		var p ConnectionRequestPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		from := p.From
		if from == "" {
			from = c.Hub.handleOf(c)
		}
		c.Hub.ForwardConnectionRequest(msg.Event, from, p.To)

	case EventRequestAccepted:
		var p RequestAcceptedPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		c.Hub.AcceptRequest(c, p.Room, p.To)
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
