package service

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

// SubscriptionService provides channel subscription business logic.
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

// NewSubscriptionService returns a new SubscriptionService.
func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

// Subscribe adds the subscriber to the channel. Subscribing twice is a no-op
// and the counter only moves when a new edge was actually created.
func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberID, channelID uint) (*models.ChannelProjection, error) {
	if subscriberID == channelID {
		return nil, models.NewInvalidOperationError("Cannot subscribe to your own channel")
	}

	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	created, err := s.subscriptionRepo.CreateIfAbsent(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	if created {
		if err := s.userRepo.AdjustSubscribersCount(ctx, channelID, 1); err != nil {
			// Edge exists but the counter did not move, the channel now
			// needs reconciliation.
			return nil, models.NewInconsistentError("Subscribed but subscriber counter is stale", err)
		}
	}

	return s.projection(ctx, channelID, true)
}

// Unsubscribe removes the subscriber from the channel. The counter only
// moves when an edge was actually removed, so unsubscribing while not
// subscribed leaves it untouched.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, subscriberID, channelID uint) (*models.ChannelProjection, error) {
	if subscriberID == channelID {
		return nil, models.NewInvalidOperationError("Cannot unsubscribe from your own channel")
	}

	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	removed, err := s.subscriptionRepo.Remove(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	if removed {
		if err := s.userRepo.AdjustSubscribersCount(ctx, channelID, -1); err != nil {
			return nil, models.NewInconsistentError("Unsubscribed but subscriber counter is stale", err)
		}
	}

	return s.projection(ctx, channelID, false)
}

// IsSubscribed reports whether the subscriber follows the channel.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.subscriptionRepo.Exists(ctx, subscriberID, channelID)
}

// ListSubscriptions returns the channels the subscriber follows as compact
// summaries, newest subscription first. The sidebar list only needs a name
// and avatar, so the full projection with counters stays off this path.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, subscriberID uint, limit, offset int) ([]models.ChannelSummary, error) {
	subs, err := s.subscriptionRepo.GetBySubscriber(ctx, subscriberID, limit, offset)
	if err != nil {
		return nil, err
	}

	channels := make([]models.ChannelSummary, 0, len(subs))
	for _, sub := range subs {
		channels = append(channels, sub.Channel.Summary())
	}
	return channels, nil
}

// ReconcileSubscriberCount overwrites a channel's denormalized subscriber
// counter with the authoritative edge count.
func (s *SubscriptionService) ReconcileSubscriberCount(ctx context.Context, channelID uint) (int64, error) {
	count, err := s.subscriptionRepo.CountForChannel(ctx, channelID)
	if err != nil {
		return 0, err
	}
	if err := s.userRepo.SetSubscribersCount(ctx, channelID, count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SubscriptionService) projection(ctx context.Context, channelID uint, subscribed bool) (*models.ChannelProjection, error) {
	channel, err := s.userRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	projection := channel.Channel(subscribed)
	return &projection, nil
}
