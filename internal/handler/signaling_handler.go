package handler

import (
	"os"

	"mentorlink-be/internal/pkg/logger"
	internalWS "mentorlink-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

type SignalingHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewSignalingHandler(hub *internalWS.Hub, log logger.ILogger) *SignalingHandler {
	return &SignalingHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs upgrades the request and attaches the connection to the hub.
// The token may arrive as a query param (browsers) or a bearer header.
func (h *SignalingHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("SignalingHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("SignalingHandler", "Starting signaling session", nil)
			internalWS.ServeWs(h.hub, conn)
			h.logger.Info("SignalingHandler", "Signaling session ended", nil)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the signaling websocket endpoint.
func (h *SignalingHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
