package service

import (
	"context"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

// VideoService provides video catalog business logic.
type VideoService struct {
	videoRepo        repository.VideoRepository
	reactionRepo     repository.ReactionRepository
	subscriptionRepo repository.SubscriptionRepository
}

type CreateVideoInput struct {
	UserID      uint
	Title       string
	Description string
	VodVideoID  string
	Cover       string
}

type UpdateVideoInput struct {
	UserID      uint
	VideoID     uint
	Title       string
	Description string
	VodVideoID  string
	Cover       string
}

// VideoPage is one page of videos plus the total matching count.
type VideoPage struct {
	Videos []*models.Video `json:"videos"`
	Total  int64           `json:"total"`
}

const maxTitleLen = 150

// NewVideoService returns a new VideoService.
func NewVideoService(
	videoRepo repository.VideoRepository,
	reactionRepo repository.ReactionRepository,
	subscriptionRepo repository.SubscriptionRepository,
) *VideoService {
	return &VideoService{
		videoRepo:        videoRepo,
		reactionRepo:     reactionRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// CreateVideo publishes a new video on the user's channel.
func (s *VideoService) CreateVideo(ctx context.Context, in CreateVideoInput) (*models.Video, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 150 characters)")
	}
	if strings.TrimSpace(in.VodVideoID) == "" {
		return nil, models.NewValidationError("VOD video ID is required")
	}

	video := &models.Video{
		Title:       title,
		Description: in.Description,
		VodVideoID:  in.VodVideoID,
		Cover:       in.Cover,
		UserID:      in.UserID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return s.videoRepo.GetByID(ctx, video.ID)
}

// GetVideo returns a video annotated with the viewer's reaction and
// subscription state. A zero viewerID means anonymous.
func (s *VideoService) GetVideo(ctx context.Context, videoID, viewerID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		if err := annotateViewerReactions(ctx, s.reactionRepo, viewerID, []*models.Video{video}); err != nil {
			return nil, err
		}
		if viewerID != video.UserID {
			subscribed, err := s.subscriptionRepo.Exists(ctx, viewerID, video.UserID)
			if err != nil {
				return nil, err
			}
			video.IsSubscribed = subscribed
		}
	}
	return video, nil
}

// ListVideos returns one global page of videos, newest first.
func (s *VideoService) ListVideos(ctx context.Context, viewerID uint, limit, offset int) (*VideoPage, error) {
	videos, err := s.videoRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.videoRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if err := annotateViewerReactions(ctx, s.reactionRepo, viewerID, videos); err != nil {
		return nil, err
	}
	return &VideoPage{Videos: videos, Total: total}, nil
}

// GetUserVideos returns one page of a channel's videos, newest first.
func (s *VideoService) GetUserVideos(ctx context.Context, userID, viewerID uint, limit, offset int) ([]*models.Video, error) {
	videos, err := s.videoRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := annotateViewerReactions(ctx, s.reactionRepo, viewerID, videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// SearchVideos returns videos whose title or description match the query.
func (s *VideoService) SearchVideos(ctx context.Context, query string, viewerID uint, limit, offset int) ([]*models.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}

	videos, err := s.videoRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := annotateViewerReactions(ctx, s.reactionRepo, viewerID, videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// GetLikedVideos returns the videos the viewer has liked.
func (s *VideoService) GetLikedVideos(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Video, error) {
	videos, err := s.videoRepo.GetLikedByUser(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, video := range videos {
		video.IsLiked = true
	}
	return videos, nil
}

// UpdateVideo edits a video's metadata. Only the owner may edit.
func (s *VideoService) UpdateVideo(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	if video.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own videos")
	}

	if in.Title != "" {
		title := strings.TrimSpace(in.Title)
		if len(title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 150 characters)")
		}
		video.Title = title
	}
	if in.Description != "" {
		video.Description = in.Description
	}
	if in.VodVideoID != "" {
		video.VodVideoID = in.VodVideoID
	}
	if in.Cover != "" {
		video.Cover = in.Cover
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// DeleteVideo removes a video. Only the owner may delete.
func (s *VideoService) DeleteVideo(ctx context.Context, userID, videoID uint) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video.UserID != userID {
		return models.NewForbiddenError("You can only delete your own videos")
	}
	return s.videoRepo.Delete(ctx, videoID)
}
