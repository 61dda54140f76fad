// handlers/notifications.go - Live notification WebSocket endpoint
package handlers

import (
	"uplife/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RequireWebSocketUpgrade rejects plain HTTP requests on the socket
// route before the auth middleware runs.
func RequireWebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// NotificationSocket upgrades the connection and keeps it registered
// with the hub until the client goes away. The server only pushes;
// inbound messages are drained and ignored.
func NotificationSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		var userID uint
		switch v := conn.Locals("userId").(type) {
		case float64:
			userID = uint(v)
		case uint:
			userID = v
		default:
			conn.Close()
			return
		}

		hub := services.GetHub()
		hub.Register(userID, conn)
		defer hub.Unregister(userID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
