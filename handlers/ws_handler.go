package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"shelfmind_backend/internal/ws"
	"shelfmind_backend/utils"
)

type WSHandler struct {
	Hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{Hub: hub}
}

// Upgrade gates the websocket endpoint. Browsers cannot set an
// Authorization header on a websocket dial, so the access token rides
// in the query string.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	claims, err := utils.ParseToken(c.Query("token"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Could not validate credentials"})
	}

	c.Locals("user_id", claims["user_id"])
	c.Locals("role", claims["role"])
	c.Locals("store_id", claims["store_id"])
	return c.Next()
}

// Dashboard - GET /ws/dashboard
// Streams scan progress and task/session events for the caller's store.
func (h *WSHandler) Dashboard() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("user_id").(string)
		storeID, _ := conn.Locals("store_id").(string)
		role, _ := conn.Locals("role").(string)

		client := &ws.Client{
			Hub:     h.Hub,
			Conn:    conn,
			Send:    make(chan []byte, 64),
			UserID:  userID,
			StoreID: storeID,
			Role:    role,
		}

		h.Hub.Register <- client

		go client.WritePump()
		client.ReadPump()
	})
}
