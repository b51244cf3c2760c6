package service

import (
	"context"
	"strings"

	"clipstream/internal/cache"
	"clipstream/internal/models"
	"clipstream/internal/repository"
)

// CommentService provides comment business logic for videos.
type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

type CreateCommentInput struct {
	UserID  uint
	VideoID uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	VideoID   uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	VideoID   uint
	CommentID uint
}

// CommentPage is one page of a video's comments plus the live total.
type CommentPage struct {
	Comments []*models.Comment `json:"comments"`
	Total    int64             `json:"total"`
}

const maxCommentLen = 2000

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

// CreateComment attaches a comment to a video and refreshes the video's
// comment counter from the comment rows.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	if _, err := s.videoRepo.GetByID(ctx, in.VideoID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  in.UserID,
		VideoID: in.VideoID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.recountComments(ctx, in.VideoID); err != nil {
		return nil, models.NewInconsistentError("Comment recorded but counter is stale", err)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns one page of a video's comments, newest first. The
// first page is the one nearly every viewer loads, so only that page goes
// through the cache; writes invalidate it alongside the video itself.
func (s *CommentService) ListComments(ctx context.Context, videoID uint, limit, offset int) (*CommentPage, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}

	if offset == 0 && limit <= 20 {
		var page CommentPage
		err := cache.Aside(ctx, cache.VideoCommentsKey(videoID), &page, cache.VideoCommentsTTL, func() error {
			return s.fillCommentPage(ctx, videoID, limit, offset, &page)
		})
		if err != nil {
			return nil, err
		}
		return &page, nil
	}

	var page CommentPage
	if err := s.fillCommentPage(ctx, videoID, limit, offset, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *CommentService) fillCommentPage(ctx context.Context, videoID uint, limit, offset int, page *CommentPage) error {
	comments, err := s.commentRepo.ListByVideo(ctx, videoID, limit, offset)
	if err != nil {
		return err
	}
	total, err := s.commentRepo.CountForVideo(ctx, videoID)
	if err != nil {
		return err
	}
	page.Comments = comments
	page.Total = total
	return nil
}

// UpdateComment edits a comment's content. Only the author may edit, and the
// comment must belong to the named video.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if in.VideoID != 0 && comment.VideoID != in.VideoID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment and refreshes the video's comment counter.
// Only the author may delete, and the comment must belong to the named video.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if in.VideoID != 0 && comment.VideoID != in.VideoID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}

	if err := s.recountComments(ctx, comment.VideoID); err != nil {
		return nil, models.NewInconsistentError("Comment removed but counter is stale", err)
	}

	return comment, nil
}

func (s *CommentService) recountComments(ctx context.Context, videoID uint) error {
	count, err := s.commentRepo.CountForVideo(ctx, videoID)
	if err != nil {
		return err
	}
	return s.videoRepo.SetCommentsCount(ctx, videoID, count)
}
