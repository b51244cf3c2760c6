// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"clipstream/internal/cache"
	"clipstream/internal/models"

	"gorm.io/gorm"
)

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error)
	List(ctx context.Context, limit, offset int) ([]*models.Video, error)
	Count(ctx context.Context) (int64, error)
	ListByChannels(ctx context.Context, channelIDs []uint, limit, offset int) ([]*models.Video, error)
	CountByChannels(ctx context.Context, channelIDs []uint) (int64, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Video, error)
	GetLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uint) error
	SetReactionCounts(ctx context.Context, id uint, likes, dislikes int64) error
	SetCommentsCount(ctx context.Context, id uint, count int64) error
}

// videoRepository implements VideoRepository
type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	key := cache.VideoKey(id)

	err := cache.Aside(ctx, key, &video, cache.VideoTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").First(&video, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Video", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error) {
	var videos []*models.Video
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}

func (r *videoRepository) List(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	var videos []*models.Video
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}

func (r *videoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// ListByChannels returns the newest-first page of videos published by any of
// the given channels. An empty channel set yields an empty page.
func (r *videoRepository) ListByChannels(ctx context.Context, channelIDs []uint, limit, offset int) ([]*models.Video, error) {
	if len(channelIDs) == 0 {
		return []*models.Video{}, nil
	}
	var videos []*models.Video
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN ?", channelIDs).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}

func (r *videoRepository) CountByChannels(ctx context.Context, channelIDs []uint) (int64, error) {
	if len(channelIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("user_id IN ?", channelIDs).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *videoRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Video, error) {
	var videos []*models.Video
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}

// GetLikedByUser returns videos the user has liked, most recent reaction first.
func (r *videoRepository) GetLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error) {
	var videos []*models.Video
	if err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN reactions ON reactions.video_id = videos.id").
		Where("reactions.user_id = ? AND reactions.polarity = ?", userID, models.PolarityLike).
		Order("reactions.updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}

// Update persists the video's editable metadata columns. The denormalized
// counters are written only through SetReactionCounts and SetCommentsCount,
// so a struct read back through the cache cannot clobber them.
func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", video.ID).
		Updates(map[string]interface{}{
			"title":        video.Title,
			"description":  video.Description,
			"vod_video_id": video.VodVideoID,
			"cover":        video.Cover,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, video.ID)
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Video{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}

// SetReactionCounts overwrites both denormalized reaction counters in a
// single statement so readers never see a half-applied pair.
func (r *videoRepository) SetReactionCounts(ctx context.Context, id uint, likes, dislikes int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"likes_count":    likes,
			"dislikes_count": dislikes,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Video", id)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}

func (r *videoRepository) SetCommentsCount(ctx context.Context, id uint, count int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("comments_count", count)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Video", id)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}
