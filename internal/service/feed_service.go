package service

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/repository"

	"golang.org/x/sync/errgroup"
)

// FeedService assembles the subscription feed for a viewer.
type FeedService struct {
	subscriptionRepo repository.SubscriptionRepository
	videoRepo        repository.VideoRepository
	reactionRepo     repository.ReactionRepository
}

// FeedPage is one page of the subscription feed plus the total number of
// videos across all subscribed channels.
type FeedPage struct {
	Videos []*models.Video `json:"videos"`
	Total  int64           `json:"total"`
}

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 100
)

// NewFeedService returns a new FeedService.
func NewFeedService(
	subscriptionRepo repository.SubscriptionRepository,
	videoRepo repository.VideoRepository,
	reactionRepo repository.ReactionRepository,
) *FeedService {
	return &FeedService{
		subscriptionRepo: subscriptionRepo,
		videoRepo:        videoRepo,
		reactionRepo:     reactionRepo,
	}
}

// GetFeed returns the viewer's subscription feed, newest first across every
// subscribed channel. A viewer with no subscriptions gets an empty page.
func (s *FeedService) GetFeed(ctx context.Context, userID uint, limit, offset int) (*FeedPage, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}

	channelIDs, err := s.subscriptionRepo.GetChannelIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(channelIDs) == 0 {
		return &FeedPage{Videos: []*models.Video{}, Total: 0}, nil
	}

	var (
		videos []*models.Video
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var pageErr error
		videos, pageErr = s.videoRepo.ListByChannels(gctx, channelIDs, limit, offset)
		return pageErr
	})
	g.Go(func() error {
		var countErr error
		total, countErr = s.videoRepo.CountByChannels(gctx, channelIDs)
		return countErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := annotateViewerReactions(ctx, s.reactionRepo, userID, videos); err != nil {
		return nil, err
	}
	// Every feed entry comes from a subscribed channel.
	for _, video := range videos {
		video.IsSubscribed = true
	}

	return &FeedPage{Videos: videos, Total: total}, nil
}

// annotateViewerReactions fills the per-viewer IsLiked/IsDisliked flags on a
// page of videos.
func annotateViewerReactions(ctx context.Context, reactionRepo repository.ReactionRepository, userID uint, videos []*models.Video) error {
	if userID == 0 || len(videos) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(videos))
	for _, video := range videos {
		ids = append(ids, video.ID)
	}

	liked, err := reactionRepo.GetReactedVideoIDs(ctx, userID, ids, models.PolarityLike)
	if err != nil {
		return err
	}
	disliked, err := reactionRepo.GetReactedVideoIDs(ctx, userID, ids, models.PolarityDislike)
	if err != nil {
		return err
	}

	likedSet := make(map[uint]struct{}, len(liked))
	for _, id := range liked {
		likedSet[id] = struct{}{}
	}
	dislikedSet := make(map[uint]struct{}, len(disliked))
	for _, id := range disliked {
		dislikedSet[id] = struct{}{}
	}

	for _, video := range videos {
		_, video.IsLiked = likedSet[video.ID]
		_, video.IsDisliked = dislikedSet[video.ID]
	}
	return nil
}
