package services

import (
	"context"
	"fmt"

	"kursus/internal/apperrors"
	"kursus/internal/models"
	"kursus/internal/repositories"
	"kursus/pkg/logger"
	"kursus/pkg/storage"
)

// ChannelService handles business logic for a user's publishing channel.
type ChannelService struct {
	channelRepo repositories.ChannelRepository
	courseRepo  repositories.CourseRepository
	videoRepo   repositories.VideoRepository
	store       storage.Store
}

// NewChannelService creates a new ChannelService.
func NewChannelService(
	channelRepo repositories.ChannelRepository,
	courseRepo repositories.CourseRepository,
	videoRepo repositories.VideoRepository,
	store storage.Store,
) *ChannelService {
	return &ChannelService{
		channelRepo: channelRepo,
		courseRepo:  courseRepo,
		videoRepo:   videoRepo,
		store:       store,
	}
}

// ChannelFields carries the updatable channel attributes.
type ChannelFields struct {
	Name        string `json:"name" form:"name" validate:"omitempty,min=3,max=100"`
	Description string `json:"description" form:"description" validate:"omitempty,min=3,max=100"`
}

// ListChannels returns every channel.
func (s *ChannelService) ListChannels() ([]models.Channel, error) {
	return s.channelRepo.GetAll()
}

// GetOwnedChannel returns the channel owned by the user.
func (s *ChannelService) GetOwnedChannel(userID string) (*models.Channel, error) {
	return s.channelRepo.GetByUser(userID)
}

// CreateChannel creates the user's channel. The avatar upload is mandatory;
// the background is optional.
func (s *ChannelService) CreateChannel(ctx context.Context, ownerID string, fields ChannelFields, avatar, background *Upload) (*models.Channel, error) {
	if avatar == nil {
		return nil, fmt.Errorf("avatar is required: %w", apperrors.ErrValidation)
	}

	avatarRef, err := s.store.Store(ctx, storage.CategoryChannelAvatar, avatar.Filename, avatar.ContentType, avatar.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store channel avatar: %w", apperrors.ErrDependency)
	}

	backgroundRef := ""
	if background != nil {
		backgroundRef, err = s.store.Store(ctx, storage.CategoryChannelAvatar, background.Filename, background.ContentType, background.Data)
		if err != nil {
			logger.L().Warnf("failed to store channel background for user %s: %v", ownerID, err)
			backgroundRef = ""
		}
	}

	channel := &models.Channel{
		Name:        fields.Name,
		Description: fields.Description,
		Avatar:      avatarRef,
		Background:  backgroundRef,
		Courses:     models.StringList{},
		Groups:      models.StringList{},
		UserID:      ownerID,
	}
	if err := s.channelRepo.Create(channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// verifyChannelOwnership loads the channel and checks the caller owns it.
func (s *ChannelService) verifyChannelOwnership(channelID, callerID string) (*models.Channel, error) {
	channel, err := s.channelRepo.GetByID(channelID)
	if err != nil {
		return nil, err
	}
	if channel.UserID != callerID {
		return nil, fmt.Errorf("channel %s: %w", channelID, apperrors.ErrForbidden)
	}
	return channel, nil
}

// UpdateChannel applies field updates and optional avatar/background
// replacements. Ownership is required.
func (s *ChannelService) UpdateChannel(ctx context.Context, channelID, callerID string, fields ChannelFields, avatar, background *Upload) (*models.Channel, error) {
	channel, err := s.verifyChannelOwnership(channelID, callerID)
	if err != nil {
		return nil, err
	}

	if fields.Name != "" {
		channel.Name = fields.Name
	}
	if fields.Description != "" {
		channel.Description = fields.Description
	}
	if avatar != nil {
		if ref, err := s.store.Store(ctx, storage.CategoryChannelAvatar, avatar.Filename, avatar.ContentType, avatar.Data); err != nil {
			logger.L().Warnf("failed to store channel avatar for %s: %v", channelID, err)
		} else {
			channel.Avatar = ref
		}
	}
	if background != nil {
		if ref, err := s.store.Store(ctx, storage.CategoryChannelAvatar, background.Filename, background.ContentType, background.Data); err != nil {
			logger.L().Warnf("failed to store channel background for %s: %v", channelID, err)
		} else {
			channel.Background = ref
		}
	}

	if err := s.channelRepo.Update(channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// DeleteChannel removes the channel and cascades to the owner's videos and
// courses. Groups under the channel are left in place. The deletes are
// independent steps, not a transaction.
func (s *ChannelService) DeleteChannel(channelID, callerID string) error {
	channel, err := s.verifyChannelOwnership(channelID, callerID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.DeleteByUser(channel.UserID); err != nil {
		return err
	}
	if err := s.courseRepo.DeleteByUser(channel.UserID); err != nil {
		return err
	}
	return s.channelRepo.Delete(channelID)
}
