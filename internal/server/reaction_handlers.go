// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikeVideo handles POST /api/v1/videos/:videoId/like. Repeating the same
// reaction toggles it off; the opposite reaction flips it.
func (s *Server) LikeVideo(c *fiber.Ctx) error {
	return s.setReaction(c, models.PolarityLike)
}

// DislikeVideo handles POST /api/v1/videos/:videoId/dislike. Repeating the
// same reaction toggles it off; the opposite reaction flips it.
func (s *Server) DislikeVideo(c *fiber.Ctx) error {
	return s.setReaction(c, models.PolarityDislike)
}

func (s *Server) setReaction(c *fiber.Ctx, polarity int8) error {
	userID := c.Locals("userID").(uint)

	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	result, err := s.reactionService.SetReaction(c.UserContext(), userID, videoID, polarity)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishBroadcastEvent(EventVideoReactionUpdated, map[string]interface{}{
		"video_id":       videoID,
		"likes_count":    result.LikesCount,
		"dislikes_count": result.DislikesCount,
		"updated_at":     time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(result)
}
