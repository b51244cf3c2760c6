// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateVideo registers an uploaded video (protected). The binary asset is
// already in the VOD service; the request carries its hosting reference.
func (s *Server) CreateVideo(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		VodVideoID  string `json:"vod_video_id"`
		Cover       string `json:"cover"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	video, err := s.videoService.CreateVideo(c.UserContext(), service.CreateVideoInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		VodVideoID:  req.VodVideoID,
		Cover:       req.Cover,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishBroadcastEvent(EventVideoCreated, map[string]interface{}{
		"video_id":   video.ID,
		"user_id":    video.UserID,
		"title":      video.Title,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(video)
}

// GetVideos returns a page of videos, newest first (public)
func (s *Server) GetVideos(c *fiber.Ctx) error {
	p := parsePagination(c)
	viewerID, _ := s.optionalUserID(c)

	page, err := s.videoService.ListVideos(c.UserContext(), viewerID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"videos":    page.Videos,
		"total":     page.Total,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

// SearchVideos searches video titles and descriptions (public, rate limited)
func (s *Server) SearchVideos(c *fiber.Ctx) error {
	query := c.Query("q")
	p := parsePagination(c)
	viewerID, _ := s.optionalUserID(c)

	videos, err := s.videoService.SearchVideos(c.UserContext(), query, viewerID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"videos":    videos,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

// GetVideo returns a single video with viewer-relative annotations
func (s *Server) GetVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	video, err := s.videoService.GetVideo(c.UserContext(), videoID, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(video)
}

// UpdateVideo patches a video's metadata (owner only)
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		VodVideoID  string `json:"vod_video_id"`
		Cover       string `json:"cover"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	video, err := s.videoService.UpdateVideo(c.UserContext(), service.UpdateVideoInput{
		UserID:      userID,
		VideoID:     videoID,
		Title:       req.Title,
		Description: req.Description,
		VodVideoID:  req.VodVideoID,
		Cover:       req.Cover,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(video)
}

// DeleteVideo removes a video (owner only)
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	if err := s.videoService.DeleteVideo(c.UserContext(), userID, videoID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// GetFeed returns the authenticated user's subscription feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c)

	page, err := s.feedService.GetFeed(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"videos":    page.Videos,
		"total":     page.Total,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

// GetLikedVideos returns the videos the authenticated user has liked,
// most recently liked first
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c)

	videos, err := s.videoService.GetLikedVideos(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"videos":    videos,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}
