package service

import (
	"context"
	"errors"
	"testing"

	"clipstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn               func(context.Context, uint) (*models.User, error)
	getByIDWithVideosFn     func(context.Context, uint, int) (*models.User, error)
	getByEmailFn            func(context.Context, string) (*models.User, error)
	getByUsernameFn         func(context.Context, string) (*models.User, error)
	createFn                func(context.Context, *models.User) error
	updateFn                func(context.Context, *models.User) error
	deleteFn                func(context.Context, uint) error
	listFn                  func(context.Context, int, int) ([]models.User, error)
	adjustSubscribersFn     func(context.Context, uint, int64) error
	setSubscribersCountFn   func(context.Context, uint, int64) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithVideos(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithVideosFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) AdjustSubscribersCount(ctx context.Context, id uint, delta int64) error {
	return s.adjustSubscribersFn(ctx, id, delta)
}
func (s *userRepoStub) SetSubscribersCount(ctx context.Context, id uint, count int64) error {
	return s.setSubscribersCountFn(ctx, id, count)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:             func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByIDWithVideosFn:   func(context.Context, uint, int) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:          func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:              func(context.Context, *models.User) error { return nil },
		updateFn:              func(context.Context, *models.User) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
		listFn:                func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		adjustSubscribersFn:   func(context.Context, uint, int64) error { return nil },
		setSubscribersCountFn: func(context.Context, uint, int64) error { return nil },
	}
}

// videoRepoStub is a stub for repository.VideoRepository.
type videoRepoStub struct {
	createFn            func(context.Context, *models.Video) error
	getByIDFn           func(context.Context, uint) (*models.Video, error)
	getByUserIDFn       func(context.Context, uint, int, int) ([]*models.Video, error)
	listFn              func(context.Context, int, int) ([]*models.Video, error)
	countFn             func(context.Context) (int64, error)
	listByChannelsFn    func(context.Context, []uint, int, int) ([]*models.Video, error)
	countByChannelsFn   func(context.Context, []uint) (int64, error)
	searchFn            func(context.Context, string, int, int) ([]*models.Video, error)
	getLikedByUserFn    func(context.Context, uint, int, int) ([]*models.Video, error)
	updateFn            func(context.Context, *models.Video) error
	deleteFn            func(context.Context, uint) error
	setReactionCountsFn func(context.Context, uint, int64, int64) error
	setCommentsCountFn  func(context.Context, uint, int64) error
}

func (s *videoRepoStub) Create(ctx context.Context, video *models.Video) error {
	return s.createFn(ctx, video)
}
func (s *videoRepoStub) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	return s.getByIDFn(ctx, id)
}
func (s *videoRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *videoRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *videoRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *videoRepoStub) ListByChannels(ctx context.Context, channelIDs []uint, limit, offset int) ([]*models.Video, error) {
	return s.listByChannelsFn(ctx, channelIDs, limit, offset)
}
func (s *videoRepoStub) CountByChannels(ctx context.Context, channelIDs []uint) (int64, error) {
	return s.countByChannelsFn(ctx, channelIDs)
}
func (s *videoRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Video, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *videoRepoStub) GetLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error) {
	return s.getLikedByUserFn(ctx, userID, limit, offset)
}
func (s *videoRepoStub) Update(ctx context.Context, video *models.Video) error {
	return s.updateFn(ctx, video)
}
func (s *videoRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *videoRepoStub) SetReactionCounts(ctx context.Context, id uint, likes, dislikes int64) error {
	return s.setReactionCountsFn(ctx, id, likes, dislikes)
}
func (s *videoRepoStub) SetCommentsCount(ctx context.Context, id uint, count int64) error {
	return s.setCommentsCountFn(ctx, id, count)
}

func noopVideoRepo() *videoRepoStub {
	return &videoRepoStub{
		createFn:            func(context.Context, *models.Video) error { return nil },
		getByIDFn:           func(context.Context, uint) (*models.Video, error) { return &models.Video{}, nil },
		getByUserIDFn:       func(context.Context, uint, int, int) ([]*models.Video, error) { return nil, nil },
		listFn:              func(context.Context, int, int) ([]*models.Video, error) { return nil, nil },
		countFn:             func(context.Context) (int64, error) { return 0, nil },
		listByChannelsFn:    func(context.Context, []uint, int, int) ([]*models.Video, error) { return nil, nil },
		countByChannelsFn:   func(context.Context, []uint) (int64, error) { return 0, nil },
		searchFn:            func(context.Context, string, int, int) ([]*models.Video, error) { return nil, nil },
		getLikedByUserFn:    func(context.Context, uint, int, int) ([]*models.Video, error) { return nil, nil },
		updateFn:            func(context.Context, *models.Video) error { return nil },
		deleteFn:            func(context.Context, uint) error { return nil },
		setReactionCountsFn: func(context.Context, uint, int64, int64) error { return nil },
		setCommentsCountFn:  func(context.Context, uint, int64) error { return nil },
	}
}

// reactionRepoStub is a stub for repository.ReactionRepository.
type reactionRepoStub struct {
	getByUserAndVideoFn  func(context.Context, uint, uint) (*models.Reaction, error)
	createFn             func(context.Context, *models.Reaction) error
	updatePolarityFn     func(context.Context, uint, int8) error
	deleteFn             func(context.Context, uint) error
	countByPolarityFn    func(context.Context, uint, int8) (int64, error)
	getReactedVideoIDsFn func(context.Context, uint, []uint, int8) ([]uint, error)
}

func (s *reactionRepoStub) GetByUserAndVideo(ctx context.Context, userID, videoID uint) (*models.Reaction, error) {
	return s.getByUserAndVideoFn(ctx, userID, videoID)
}
func (s *reactionRepoStub) Create(ctx context.Context, reaction *models.Reaction) error {
	return s.createFn(ctx, reaction)
}
func (s *reactionRepoStub) UpdatePolarity(ctx context.Context, id uint, polarity int8) error {
	return s.updatePolarityFn(ctx, id, polarity)
}
func (s *reactionRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *reactionRepoStub) CountByPolarity(ctx context.Context, videoID uint, polarity int8) (int64, error) {
	return s.countByPolarityFn(ctx, videoID, polarity)
}
func (s *reactionRepoStub) GetReactedVideoIDs(ctx context.Context, userID uint, videoIDs []uint, polarity int8) ([]uint, error) {
	return s.getReactedVideoIDsFn(ctx, userID, videoIDs, polarity)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		getByUserAndVideoFn:  func(context.Context, uint, uint) (*models.Reaction, error) { return nil, nil },
		createFn:             func(context.Context, *models.Reaction) error { return nil },
		updatePolarityFn:     func(context.Context, uint, int8) error { return nil },
		deleteFn:             func(context.Context, uint) error { return nil },
		countByPolarityFn:    func(context.Context, uint, int8) (int64, error) { return 0, nil },
		getReactedVideoIDsFn: func(context.Context, uint, []uint, int8) ([]uint, error) { return nil, nil },
	}
}

// subscriptionRepoStub is a stub for repository.SubscriptionRepository.
type subscriptionRepoStub struct {
	createIfAbsentFn          func(context.Context, uint, uint) (bool, error)
	removeFn                  func(context.Context, uint, uint) (bool, error)
	existsFn                  func(context.Context, uint, uint) (bool, error)
	getChannelIDsFn           func(context.Context, uint) ([]uint, error)
	getBySubscriberFn         func(context.Context, uint, int, int) ([]models.Subscription, error)
	getSubscribedChannelIDsFn func(context.Context, uint, []uint) ([]uint, error)
	countForChannelFn         func(context.Context, uint) (int64, error)
}

func (s *subscriptionRepoStub) CreateIfAbsent(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.createIfAbsentFn(ctx, subscriberID, channelID)
}
func (s *subscriptionRepoStub) Remove(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.removeFn(ctx, subscriberID, channelID)
}
func (s *subscriptionRepoStub) Exists(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.existsFn(ctx, subscriberID, channelID)
}
func (s *subscriptionRepoStub) GetChannelIDs(ctx context.Context, subscriberID uint) ([]uint, error) {
	return s.getChannelIDsFn(ctx, subscriberID)
}
func (s *subscriptionRepoStub) GetBySubscriber(ctx context.Context, subscriberID uint, limit, offset int) ([]models.Subscription, error) {
	return s.getBySubscriberFn(ctx, subscriberID, limit, offset)
}
func (s *subscriptionRepoStub) GetSubscribedChannelIDs(ctx context.Context, subscriberID uint, channelIDs []uint) ([]uint, error) {
	return s.getSubscribedChannelIDsFn(ctx, subscriberID, channelIDs)
}
func (s *subscriptionRepoStub) CountForChannel(ctx context.Context, channelID uint) (int64, error) {
	return s.countForChannelFn(ctx, channelID)
}

func noopSubscriptionRepo() *subscriptionRepoStub {
	return &subscriptionRepoStub{
		createIfAbsentFn:          func(context.Context, uint, uint) (bool, error) { return true, nil },
		removeFn:                  func(context.Context, uint, uint) (bool, error) { return true, nil },
		existsFn:                  func(context.Context, uint, uint) (bool, error) { return false, nil },
		getChannelIDsFn:           func(context.Context, uint) ([]uint, error) { return nil, nil },
		getBySubscriberFn:         func(context.Context, uint, int, int) ([]models.Subscription, error) { return nil, nil },
		getSubscribedChannelIDsFn: func(context.Context, uint, []uint) ([]uint, error) { return nil, nil },
		countForChannelFn:         func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listByVideoFn   func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteFn        func(context.Context, uint) error
	countForVideoFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByVideo(ctx context.Context, videoID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByVideoFn(ctx, videoID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) CountForVideo(ctx context.Context, videoID uint) (int64, error) {
	return s.countForVideoFn(ctx, videoID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByVideoFn:   func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		countForVideoFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}

func assertInvalidOperationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "INVALID_OPERATION")
}

func assertInconsistentError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "INCONSISTENT")
}
