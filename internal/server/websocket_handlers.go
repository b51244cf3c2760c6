// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"encoding/json"
	"log"

	"clipstream/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// GetOnlineUsers returns the IDs of users currently connected over
// WebSocket, for channel-online indicators in the client.
func (s *Server) GetOnlineUsers(c *fiber.Ctx) error {
	if s.hub == nil {
		return c.JSON(fiber.Map{"user_ids": []uint{}})
	}
	ids := s.hub.OnlineUsers()
	if ids == nil {
		ids = []uint{}
	}
	return c.JSON(fiber.Map{"user_ids": ids})
}

// WebsocketHandler returns a websocket handler that registers connections
// with the engagement event hub. Authentication is handled by route
// middleware and userID is read from connection locals.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}
		uid, ok := userIDVal.(uint)
		if !ok {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		// Register connection with scaling guardrails
		client, err := s.hub.Register(uid, conn)
		if err != nil {
			log.Printf("WebSocket: Failed to register user %d: %v", uid, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		defer s.hub.UnregisterClient(client)

		// The handshake is complete; retire the single-use ticket.
		s.consumeWSTicket(context.Background(), conn.Locals("wsTicket"))

		// Confirm the subscription to the client
		welcome, merr := json.Marshal(map[string]interface{}{
			"type": "connected",
			"payload": map[string]interface{}{
				"user_id": uid,
			},
		})
		if merr == nil {
			client.TrySend(welcome)
		}

		// Start pumps
		go client.WritePump()
		client.ReadPump()
	})
}
