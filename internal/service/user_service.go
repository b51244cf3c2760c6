package service

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/repository"
	"clipstream/internal/validation"
)

// UserService provides user profile and channel business logic.
type UserService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
}

type UpdateProfileInput struct {
	UserID             uint
	Username           string
	ChannelDescription string
	Avatar             string
	Cover              string
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetChannel returns a user's public channel view, annotated with whether
// the viewer is subscribed. A zero viewerID means anonymous.
func (s *UserService) GetChannel(ctx context.Context, channelID, viewerID uint) (*models.ChannelProjection, error) {
	user, err := s.userRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != 0 && viewerID != channelID {
		isSubscribed, err = s.subscriptionRepo.Exists(ctx, viewerID, channelID)
		if err != nil {
			return nil, err
		}
	}

	channel := user.Channel(isSubscribed)
	return &channel, nil
}

const maxChannelDescriptionLen = 1000

// UpdateProfile updates the user's own profile fields. A username change is
// rejected when the name is invalid or already taken.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Username already taken")
		}
		user.Username = in.Username
	}
	if in.ChannelDescription != "" {
		if len(in.ChannelDescription) > maxChannelDescriptionLen {
			return nil, models.NewValidationError("Channel description too long (max 1000 characters)")
		}
		user.ChannelDescription = in.ChannelDescription
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if in.Cover != "" {
		user.Cover = in.Cover
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
