package repository

import (
	"context"
	"errors"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for subscription data operations
type SubscriptionRepository interface {
	CreateIfAbsent(ctx context.Context, subscriberID, channelID uint) (bool, error)
	Remove(ctx context.Context, subscriberID, channelID uint) (bool, error)
	Exists(ctx context.Context, subscriberID, channelID uint) (bool, error)
	GetChannelIDs(ctx context.Context, subscriberID uint) ([]uint, error)
	GetBySubscriber(ctx context.Context, subscriberID uint, limit, offset int) ([]models.Subscription, error)
	GetSubscribedChannelIDs(ctx context.Context, subscriberID uint, channelIDs []uint) ([]uint, error)
	CountForChannel(ctx context.Context, channelID uint) (int64, error)
}

// subscriptionRepository implements SubscriptionRepository
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// CreateIfAbsent inserts the edge and reports whether a new row was created.
// An existing edge is not an error.
func (r *subscriptionRepository) CreateIfAbsent(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	sub := models.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	err := r.db.WithContext(ctx).Create(&sub).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

// Remove deletes the edge and reports whether a row was actually removed.
func (r *subscriptionRepository) Remove(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

// GetChannelIDs returns every channel the subscriber follows.
func (r *subscriptionRepository) GetChannelIDs(ctx context.Context, subscriberID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Pluck("channel_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *subscriptionRepository) GetBySubscriber(ctx context.Context, subscriberID uint, limit, offset int) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Preload("Channel").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&subs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return subs, nil
}

// GetSubscribedChannelIDs returns the subset of channelIDs the subscriber
// follows, used to annotate channel lists for the viewer.
func (r *subscriptionRepository) GetSubscribedChannelIDs(ctx context.Context, subscriberID uint, channelIDs []uint) ([]uint, error) {
	if len(channelIDs) == 0 {
		return []uint{}, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id IN ?", subscriberID, channelIDs).
		Pluck("channel_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// CountForChannel returns the authoritative subscriber count from the edges.
func (r *subscriptionRepository) CountForChannel(ctx context.Context, channelID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
