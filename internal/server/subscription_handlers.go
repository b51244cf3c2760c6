// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Subscribe handles POST /api/v1/users/:userId/subscribe. Subscribing twice
// is a no-op; the channel projection is returned either way.
func (s *Server) Subscribe(c *fiber.Ctx) error {
	subscriberID := c.Locals("userID").(uint)

	channelID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	channel, err := s.subscriptionService.Subscribe(c.UserContext(), subscriberID, channelID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishBroadcastEvent(EventSubscriptionUpdated, map[string]interface{}{
		"channel_id":        channel.ID,
		"subscribers_count": channel.SubscribersCount,
		"updated_at":        time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(channel)
}

// Unsubscribe handles DELETE /api/v1/users/:userId/subscribe. Removing an
// absent subscription is a no-op; the channel projection is returned either way.
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	subscriberID := c.Locals("userID").(uint)

	channelID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	channel, err := s.subscriptionService.Unsubscribe(c.UserContext(), subscriberID, channelID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishBroadcastEvent(EventSubscriptionUpdated, map[string]interface{}{
		"channel_id":        channel.ID,
		"subscribers_count": channel.SubscribersCount,
		"updated_at":        time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(channel)
}
