package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches a freshly upgraded connection to the hub and runs
// its pumps. Blocks until the connection closes.
func ServeWs(hub *Hub, c *websocket.Conn) {
	client := &Client{
		Hub:  hub,
		Conn: c,
		Id:   uuid.NewString(),
		Send: make(chan []byte, 256),
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
