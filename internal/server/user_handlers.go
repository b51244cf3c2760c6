// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers returns a page of users (public browse)
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c)

	users, err := s.userService.ListUsers(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":     users,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

// GetChannel returns a user's public channel profile with the viewer's
// subscription state annotated when a valid token is presented.
func (s *Server) GetChannel(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	channel, err := s.userService.GetChannel(c.UserContext(), channelID, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(channel)
}

// GetMyProfile returns the authenticated user's own profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile patches the authenticated user's profile fields
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username           string `json:"username"`
		ChannelDescription string `json:"channel_description"`
		Avatar             string `json:"avatar"`
		Cover              string `json:"cover"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:             userID,
		Username:           req.Username,
		ChannelDescription: req.ChannelDescription,
		Avatar:             req.Avatar,
		Cover:              req.Cover,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetSubscriptions lists the channels a user is subscribed to
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c)

	channels, err := s.subscriptionService.ListSubscriptions(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"subscriptions": channels,
		"page":          p.Page,
		"page_size":     p.PageSize,
	})
}

// GetUserVideos lists a channel's videos, newest first
func (s *Server) GetUserVideos(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c)

	viewerID, _ := s.optionalUserID(c)

	videos, err := s.videoService.GetUserVideos(c.UserContext(), userID, viewerID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"videos":    videos,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}
