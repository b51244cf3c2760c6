package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Create(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockVideoRepository) List(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockVideoRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVideoRepository) ListByChannels(ctx context.Context, channelIDs []uint, limit, offset int) ([]*models.Video, error) {
	args := m.Called(ctx, channelIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockVideoRepository) CountByChannels(ctx context.Context, channelIDs []uint) (int64, error) {
	args := m.Called(ctx, channelIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVideoRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Video, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockVideoRepository) GetLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockVideoRepository) Update(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepository) SetReactionCounts(ctx context.Context, id uint, likes, dislikes int64) error {
	args := m.Called(ctx, id, likes, dislikes)
	return args.Error(0)
}

func (m *MockVideoRepository) SetCommentsCount(ctx context.Context, id uint, count int64) error {
	args := m.Called(ctx, id, count)
	return args.Error(0)
}

type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) GetByUserAndVideo(ctx context.Context, userID, videoID uint) (*models.Reaction, error) {
	args := m.Called(ctx, userID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) UpdatePolarity(ctx context.Context, id uint, polarity int8) error {
	args := m.Called(ctx, id, polarity)
	return args.Error(0)
}

func (m *MockReactionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReactionRepository) CountByPolarity(ctx context.Context, videoID uint, polarity int8) (int64, error) {
	args := m.Called(ctx, videoID, polarity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReactionRepository) GetReactedVideoIDs(ctx context.Context, userID uint, videoIDs []uint, polarity int8) ([]uint, error) {
	args := m.Called(ctx, userID, videoIDs, polarity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func newReactionTestApp(videoRepo *MockVideoRepository, reactionRepo *MockReactionRepository, commentRepo *MockCommentRepository, userID uint) *fiber.App {
	s := &Server{
		reactionService: service.NewReactionService(reactionRepo, videoRepo, commentRepo),
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Post("/videos/:videoId/like", s.LikeVideo)
	app.Post("/videos/:videoId/dislike", s.DislikeVideo)
	return app
}

func TestLikeVideo(t *testing.T) {
	video := &models.Video{ID: 10, Title: "clip", UserID: 2}

	t.Run("First Like Creates Reaction", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		reactionRepo := new(MockReactionRepository)
		commentRepo := new(MockCommentRepository)
		app := newReactionTestApp(videoRepo, reactionRepo, commentRepo, 1)

		videoRepo.On("GetByID", mock.Anything, uint(10)).Return(video, nil)
		reactionRepo.On("GetByUserAndVideo", mock.Anything, uint(1), uint(10)).Return(nil, nil)
		reactionRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Reaction) bool {
			return r.UserID == 1 && r.VideoID == 10 && r.Polarity == models.PolarityLike
		})).Return(nil)
		reactionRepo.On("CountByPolarity", mock.Anything, uint(10), models.PolarityLike).Return(int64(1), nil)
		reactionRepo.On("CountByPolarity", mock.Anything, uint(10), models.PolarityDislike).Return(int64(0), nil)
		videoRepo.On("SetReactionCounts", mock.Anything, uint(10), int64(1), int64(0)).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/videos/10/like", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ReactionResult
		_ = json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, models.ReactionLiked, result.State)
		assert.Equal(t, int64(1), result.LikesCount)
		assert.Equal(t, int64(0), result.DislikesCount)
	})

	t.Run("Repeat Like Toggles Off", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		reactionRepo := new(MockReactionRepository)
		commentRepo := new(MockCommentRepository)
		app := newReactionTestApp(videoRepo, reactionRepo, commentRepo, 1)

		videoRepo.On("GetByID", mock.Anything, uint(10)).Return(video, nil)
		reactionRepo.On("GetByUserAndVideo", mock.Anything, uint(1), uint(10)).
			Return(&models.Reaction{ID: 7, UserID: 1, VideoID: 10, Polarity: models.PolarityLike}, nil)
		reactionRepo.On("Delete", mock.Anything, uint(7)).Return(nil)
		reactionRepo.On("CountByPolarity", mock.Anything, uint(10), models.PolarityLike).Return(int64(0), nil)
		reactionRepo.On("CountByPolarity", mock.Anything, uint(10), models.PolarityDislike).Return(int64(0), nil)
		videoRepo.On("SetReactionCounts", mock.Anything, uint(10), int64(0), int64(0)).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/videos/10/like", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ReactionResult
		_ = json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, models.ReactionNone, result.State)
	})

	t.Run("Unknown Video", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		reactionRepo := new(MockReactionRepository)
		commentRepo := new(MockCommentRepository)
		app := newReactionTestApp(videoRepo, reactionRepo, commentRepo, 1)

		videoRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.NewNotFoundError("Video", 99))

		req := httptest.NewRequest(http.MethodPost, "/videos/99/like", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDislikeVideo_FlipsExistingLike(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	reactionRepo := new(MockReactionRepository)
	commentRepo := new(MockCommentRepository)
	app := newReactionTestApp(videoRepo, reactionRepo, commentRepo, 1)

	videoRepo.On("GetByID", mock.Anything, uint(10)).Return(&models.Video{ID: 10, UserID: 2}, nil)
	reactionRepo.On("GetByUserAndVideo", mock.Anything, uint(1), uint(10)).
		Return(&models.Reaction{ID: 7, UserID: 1, VideoID: 10, Polarity: models.PolarityLike}, nil)
	reactionRepo.On("UpdatePolarity", mock.Anything, uint(7), models.PolarityDislike).Return(nil)
	reactionRepo.On("CountByPolarity", mock.Anything, uint(10), models.PolarityLike).Return(int64(0), nil)
	reactionRepo.On("CountByPolarity", mock.Anything, uint(10), models.PolarityDislike).Return(int64(1), nil)
	videoRepo.On("SetReactionCounts", mock.Anything, uint(10), int64(0), int64(1)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/videos/10/dislike", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result service.ReactionResult
	_ = json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, models.ReactionDisliked, result.State)
	assert.Equal(t, int64(1), result.DislikesCount)

	reactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	reactionRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
