package service

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

// ReactionService provides like/dislike business logic for videos.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
}

// ReactionResult is the outcome of a toggle, carrying the viewer's resulting
// state and the fresh counters.
type ReactionResult struct {
	State         models.ReactionState `json:"state"`
	LikesCount    int64                `json:"likes_count"`
	DislikesCount int64                `json:"dislikes_count"`
}

// NewReactionService returns a new ReactionService.
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		videoRepo:    videoRepo,
		commentRepo:  commentRepo,
	}
}

// SetReaction toggles the user's reaction on a video. Reacting with the
// polarity already recorded removes the reaction, reacting with the opposite
// polarity flips the row in place. After the row mutation both counters are
// recomputed from the reaction rows and persisted on the video.
func (s *ReactionService) SetReaction(ctx context.Context, userID, videoID uint, polarity int8) (*ReactionResult, error) {
	if !models.ValidPolarity(polarity) {
		return nil, models.NewValidationError("Polarity must be 1 (like) or -1 (dislike)")
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}

	existing, err := s.reactionRepo.GetByUserAndVideo(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	state := models.StateForPolarity(polarity)
	switch {
	case existing == nil:
		err = s.reactionRepo.Create(ctx, &models.Reaction{
			UserID:   userID,
			VideoID:  videoID,
			Polarity: polarity,
		})
	case existing.Polarity == polarity:
		err = s.reactionRepo.Delete(ctx, existing.ID)
		state = models.ReactionNone
	default:
		err = s.reactionRepo.UpdatePolarity(ctx, existing.ID, polarity)
	}
	if err != nil {
		return nil, err
	}

	likes, dislikes, err := s.recountReactions(ctx, videoID)
	if err != nil {
		// The row mutation landed but the counters did not, the video now
		// needs reconciliation.
		return nil, models.NewInconsistentError("Reaction recorded but counters are stale", err)
	}

	return &ReactionResult{
		State:         state,
		LikesCount:    likes,
		DislikesCount: dislikes,
	}, nil
}

// GetReaction returns the user's current reaction state for a video.
func (s *ReactionService) GetReaction(ctx context.Context, userID, videoID uint) (models.ReactionState, error) {
	existing, err := s.reactionRepo.GetByUserAndVideo(ctx, userID, videoID)
	if err != nil {
		return models.ReactionNone, err
	}
	if existing == nil {
		return models.ReactionNone, nil
	}
	return models.StateForPolarity(existing.Polarity), nil
}

// ReconcileVideoCounters recomputes every denormalized counter on a video
// from its source-of-truth rows.
func (s *ReactionService) ReconcileVideoCounters(ctx context.Context, videoID uint) error {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return err
	}

	if _, _, err := s.recountReactions(ctx, videoID); err != nil {
		return err
	}

	comments, err := s.commentRepo.CountForVideo(ctx, videoID)
	if err != nil {
		return err
	}
	return s.videoRepo.SetCommentsCount(ctx, videoID, comments)
}

func (s *ReactionService) recountReactions(ctx context.Context, videoID uint) (int64, int64, error) {
	likes, err := s.reactionRepo.CountByPolarity(ctx, videoID, models.PolarityLike)
	if err != nil {
		return 0, 0, err
	}
	dislikes, err := s.reactionRepo.CountByPolarity(ctx, videoID, models.PolarityDislike)
	if err != nil {
		return 0, 0, err
	}
	if err := s.videoRepo.SetReactionCounts(ctx, videoID, likes, dislikes); err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}
