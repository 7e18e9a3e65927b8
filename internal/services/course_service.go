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

// CourseService handles business logic for the course catalog.
type CourseService struct {
	courseRepo  repositories.CourseRepository
	channelRepo repositories.ChannelRepository
	store       storage.Store
	notifier    Notifier
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	courseRepo repositories.CourseRepository,
	channelRepo repositories.ChannelRepository,
	store storage.Store,
	notifier Notifier,
) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		channelRepo: channelRepo,
		store:       store,
		notifier:    notifier,
	}
}

// CourseFields carries the updatable course attributes.
type CourseFields struct {
	Title       string   `json:"title" form:"title" validate:"omitempty,min=3,max=100"`
	Description string   `json:"description" form:"description" validate:"omitempty,min=3,max=5000"`
	Price       *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
}

// ListCourses returns every course. An empty catalog is reported as not
// found rather than an empty list.
func (s *CourseService) ListCourses() ([]models.Course, error) {
	courses, err := s.courseRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("no course found: %w", apperrors.ErrNotFound)
	}
	return courses, nil
}

// GetCourseByID returns a single course.
func (s *CourseService) GetCourseByID(id string) (*models.Course, error) {
	return s.courseRepo.GetByID(id)
}

// ListCoursesByUser returns the courses owned by a user, not-found when empty.
func (s *CourseService) ListCoursesByUser(userID string) ([]models.Course, error) {
	courses, err := s.courseRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("no course found: %w", apperrors.ErrNotFound)
	}
	return courses, nil
}

// AddCourse creates a course under a channel the caller owns. The avatar
// upload is mandatory. The new course ID is appended to the channel's course
// list, and a courseAdded event is broadcast.
func (s *CourseService) AddCourse(ctx context.Context, channelID, callerID string, fields CourseFields, avatar *Upload) (*models.Course, error) {
	channel, err := s.channelRepo.GetByID(channelID)
	if err != nil {
		return nil, err
	}
	if channel.UserID != callerID {
		return nil, fmt.Errorf("channel %s: %w", channelID, apperrors.ErrForbidden)
	}
	if avatar == nil {
		return nil, fmt.Errorf("avatar is required: %w", apperrors.ErrValidation)
	}

	avatarRef, err := s.store.Store(ctx, storage.CategoryCourseAvatar, avatar.Filename, avatar.ContentType, avatar.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store course avatar: %w", apperrors.ErrDependency)
	}

	price := 0.0
	if fields.Price != nil {
		price = *fields.Price
	}
	course := &models.Course{
		Title:       fields.Title,
		Description: fields.Description,
		Price:       price,
		Avatar:      avatarRef,
		Videos:      models.StringList{},
		UserID:      callerID,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}

	channel.Courses = append(channel.Courses, course.ID)
	if err := s.channelRepo.Update(channel); err != nil {
		// The course exists but the channel list does not reference it; no
		// transaction spans the two saves.
		logger.L().Warnf("course %s created but channel %s not updated: %v", course.ID, channelID, err)
	}

	broadcast(s.notifier, EventCourseAdded, course)
	return course, nil
}

// verifyCourseOwnership loads the course and checks the caller owns it.
func (s *CourseService) verifyCourseOwnership(courseID, callerID string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.UserID != callerID {
		return nil, fmt.Errorf("course %s: %w", courseID, apperrors.ErrForbidden)
	}
	return course, nil
}

// UpdateCourse applies field updates and, if a new avatar file is supplied,
// replaces the avatar reference. Ownership is required.
func (s *CourseService) UpdateCourse(ctx context.Context, courseID, callerID string, fields CourseFields, avatar *Upload) (*models.Course, error) {
	course, err := s.verifyCourseOwnership(courseID, callerID)
	if err != nil {
		return nil, err
	}

	if fields.Title != "" {
		course.Title = fields.Title
	}
	if fields.Description != "" {
		course.Description = fields.Description
	}
	if fields.Price != nil {
		course.Price = *fields.Price
	}
	if avatar != nil {
		if ref, err := s.store.Store(ctx, storage.CategoryCourseAvatar, avatar.Filename, avatar.ContentType, avatar.Data); err != nil {
			logger.L().Warnf("failed to store course avatar for %s: %v", courseID, err)
		} else {
			course.Avatar = ref
		}
	}

	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}

	broadcast(s.notifier, EventCourseUpdated, course)
	return course, nil
}

// DeleteCourse removes the course record. The owning channel's course list is
// deliberately left untouched; readers filter dangling references lazily.
func (s *CourseService) DeleteCourse(courseID, callerID string) error {
	if _, err := s.verifyCourseOwnership(courseID, callerID); err != nil {
		return err
	}
	if err := s.courseRepo.Delete(courseID); err != nil {
		return err
	}

	broadcast(s.notifier, EventCourseDeleted, map[string]string{"id": courseID})
	return nil
}
