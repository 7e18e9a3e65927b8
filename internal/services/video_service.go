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

// VideoService handles business logic for course video assets.
type VideoService struct {
	videoRepo   repositories.VideoRepository
	courseRepo  repositories.CourseRepository
	channelRepo repositories.ChannelRepository
	store       storage.Store
	notifier    Notifier
}

// NewVideoService creates a new VideoService.
func NewVideoService(
	videoRepo repositories.VideoRepository,
	courseRepo repositories.CourseRepository,
	channelRepo repositories.ChannelRepository,
	store storage.Store,
	notifier Notifier,
) *VideoService {
	return &VideoService{
		videoRepo:   videoRepo,
		courseRepo:  courseRepo,
		channelRepo: channelRepo,
		store:       store,
		notifier:    notifier,
	}
}

// VideoFields carries the updatable video metadata.
type VideoFields struct {
	Title       string `json:"title" form:"title" validate:"omitempty,min=3,max=100"`
	Description string `json:"description" form:"description" validate:"omitempty,min=3,max=100"`
}

// AddVideo stores the media files and creates the video under a course the
// caller owns. The video file is mandatory, the thumbnail optional. The new
// video ID is appended to the course's video list.
func (s *VideoService) AddVideo(ctx context.Context, courseID, callerID string, fields VideoFields, video, thumbnail *Upload) (*models.Video, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.UserID != callerID {
		return nil, fmt.Errorf("course %s: %w", courseID, apperrors.ErrForbidden)
	}
	if video == nil {
		return nil, fmt.Errorf("video file is required: %w", apperrors.ErrValidation)
	}

	videoRef, err := s.store.Store(ctx, storage.CategoryVideo, video.Filename, video.ContentType, video.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store video: %w", apperrors.ErrDependency)
	}

	thumbnailRef := ""
	if thumbnail != nil {
		thumbnailRef, err = s.store.Store(ctx, storage.CategoryVideoThumbnail, thumbnail.Filename, thumbnail.ContentType, thumbnail.Data)
		if err != nil {
			logger.L().Warnf("failed to store thumbnail for course %s: %v", courseID, err)
			thumbnailRef = ""
		}
	}

	v := &models.Video{
		Title:       fields.Title,
		Description: fields.Description,
		Video:       videoRef,
		Thumbnail:   thumbnailRef,
		UserID:      callerID,
	}
	if err := s.videoRepo.Create(v); err != nil {
		return nil, err
	}

	course.Videos = append(course.Videos, v.ID)
	if err := s.courseRepo.Update(course); err != nil {
		logger.L().Warnf("video %s created but course %s not updated: %v", v.ID, courseID, err)
	}

	broadcast(s.notifier, EventVideoAdded, v)
	return v, nil
}

// verifyVideoOwnership loads the video and checks the caller owns it.
func (s *VideoService) verifyVideoOwnership(videoID, callerID string) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, err
	}
	if video.UserID != callerID {
		return nil, fmt.Errorf("video %s: %w", videoID, apperrors.ErrForbidden)
	}
	return video, nil
}

// GetVideoByID returns a video; only the owner may read it directly.
func (s *VideoService) GetVideoByID(videoID, callerID string) (*models.Video, error) {
	return s.verifyVideoOwnership(videoID, callerID)
}

// ListVideosByUser returns every video owned by the user.
func (s *VideoService) ListVideosByUser(userID string) ([]models.Video, error) {
	return s.videoRepo.GetByUser(userID)
}

// CourseVideos is a course with its video list populated, plus the
// requester's own channel info for display.
type CourseVideos struct {
	Course  *models.Course  `json:"course"`
	Videos  []models.Video  `json:"videos"`
	Channel *models.Channel `json:"channel"`
}

// GetVideoCourse returns the course with videos populated and the
// requester's channel, independent of who owns the course. Video IDs the
// course still lists but that no longer exist are filtered on read.
func (s *VideoService) GetVideoCourse(courseID, callerID string) (*CourseVideos, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.GetByIDs(course.Videos)
	if err != nil {
		return nil, err
	}

	// The requester may not have a channel; that is not an error here.
	channel, err := s.channelRepo.GetByUser(callerID)
	if err != nil {
		channel = nil
	}

	return &CourseVideos{Course: course, Videos: videos, Channel: channel}, nil
}

// UpdateVideo applies metadata updates and optional media replacements. When
// a new file is supplied the old stored asset is removed before the
// reference is replaced, so storage does not grow without bound. The
// delete-then-save pair is not atomic: a crash in between leaves the record
// pointing at a deleted asset.
func (s *VideoService) UpdateVideo(ctx context.Context, videoID, callerID string, fields VideoFields, video, thumbnail *Upload) (*models.Video, error) {
	v, err := s.verifyVideoOwnership(videoID, callerID)
	if err != nil {
		return nil, err
	}

	if fields.Title != "" {
		v.Title = fields.Title
	}
	if fields.Description != "" {
		v.Description = fields.Description
	}

	if video != nil {
		if v.Video != "" {
			if err := s.store.Remove(ctx, v.Video); err != nil {
				logger.L().Warnf("failed to remove old video asset %s: %v", v.Video, err)
			}
		}
		ref, err := s.store.Store(ctx, storage.CategoryVideo, video.Filename, video.ContentType, video.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to store video: %w", apperrors.ErrDependency)
		}
		v.Video = ref
	}

	if thumbnail != nil {
		if v.Thumbnail != "" {
			if err := s.store.Remove(ctx, v.Thumbnail); err != nil {
				logger.L().Warnf("failed to remove old thumbnail %s: %v", v.Thumbnail, err)
			}
		}
		ref, err := s.store.Store(ctx, storage.CategoryVideoThumbnail, thumbnail.Filename, thumbnail.ContentType, thumbnail.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to store thumbnail: %w", apperrors.ErrDependency)
		}
		v.Thumbnail = ref
	}

	if err := s.videoRepo.Update(v); err != nil {
		return nil, err
	}

	broadcast(s.notifier, EventVideoUpdated, v)
	return v, nil
}

// DeleteVideo removes the video record. The parent course's video list and
// the stored media assets are deliberately left as they are; readers filter
// the dangling ID lazily.
func (s *VideoService) DeleteVideo(videoID, callerID string) error {
	if _, err := s.verifyVideoOwnership(videoID, callerID); err != nil {
		return err
	}
	if err := s.videoRepo.Delete(videoID); err != nil {
		return err
	}

	broadcast(s.notifier, EventVideoDeleted, map[string]string{"id": videoID})
	return nil
}
