package repository

import (
	"context"
	"errors"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	GetByUserAndVideo(ctx context.Context, userID, videoID uint) (*models.Reaction, error)
	Create(ctx context.Context, reaction *models.Reaction) error
	UpdatePolarity(ctx context.Context, id uint, polarity int8) error
	Delete(ctx context.Context, id uint) error
	CountByPolarity(ctx context.Context, videoID uint, polarity int8) (int64, error)
	GetReactedVideoIDs(ctx context.Context, userID uint, videoIDs []uint, polarity int8) ([]uint, error)
}

// reactionRepository implements ReactionRepository
type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) GetByUserAndVideo(ctx context.Context, userID, videoID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &reaction, nil
}

func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Concurrent toggle already created the row.
			return models.NewValidationError("Reaction already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reactionRepository) UpdatePolarity(ctx context.Context, id uint, polarity int8) error {
	res := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("id = ?", id).
		Update("polarity", polarity)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Reaction", id)
	}
	return nil
}

func (r *reactionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Reaction{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// CountByPolarity returns the authoritative reaction count for a video from
// the reaction rows themselves.
func (r *reactionRepository) CountByPolarity(ctx context.Context, videoID uint, polarity int8) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("video_id = ? AND polarity = ?", videoID, polarity).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// GetReactedVideoIDs returns the subset of videoIDs the user has reacted to
// with the given polarity, used to annotate video pages for the viewer.
func (r *reactionRepository) GetReactedVideoIDs(ctx context.Context, userID uint, videoIDs []uint, polarity int8) ([]uint, error) {
	if len(videoIDs) == 0 {
		return []uint{}, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("user_id = ? AND video_id IN ? AND polarity = ?", userID, videoIDs, polarity).
		Pluck("video_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
