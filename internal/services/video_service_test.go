package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kursus/internal/apperrors"
	"kursus/internal/models"
	"kursus/internal/services"
)

func TestVideoService_AddVideo(t *testing.T) {
	mockVideos := new(MockVideoRepository)
	mockCourses := new(MockCourseRepository)
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	service := services.NewVideoService(mockVideos, mockCourses, nil, store, notifier)

	course := &models.Course{ID: "course-1", UserID: "user-123", Videos: models.StringList{}}
	fields := services.VideoFields{Title: "Lesson 1"}
	videoFile := &services.Upload{Filename: "lesson1.mp4", ContentType: "video/mp4", Data: []byte("vid")}
	thumbFile := &services.Upload{Filename: "lesson1.png", ContentType: "image/png", Data: []byte("img")}

	mockCourses.On("GetByID", "course-1").Return(course, nil).Once()
	mockVideos.On("Create", mock.AnythingOfType("*models.Video")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Video).ID = "video-1"
	}).Return(nil).Once()
	mockCourses.On("Update", mock.AnythingOfType("*models.Course")).Return(nil).Once()

	video, err := service.AddVideo(context.Background(), "course-1", "user-123", fields, videoFile, thumbFile)
	assert.NoError(t, err)
	assert.NotEmpty(t, video.Video)
	assert.NotEmpty(t, video.Thumbnail)
	assert.True(t, course.Videos.Contains("video-1"))
	assert.Equal(t, []string{services.EventVideoAdded}, notifier.events)
	mockCourses.AssertExpectations(t)
	mockVideos.AssertExpectations(t)

	// Test missing video file
	mockCourses.On("GetByID", "course-1").Return(course, nil).Once()
	_, err = service.AddVideo(context.Background(), "course-1", "user-123", fields, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockCourses.AssertExpectations(t)

	// Test not the course owner
	mockCourses.On("GetByID", "course-1").Return(course, nil).Once()
	_, err = service.AddVideo(context.Background(), "course-1", "someone-else", fields, videoFile, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockCourses.AssertExpectations(t)
}

func TestVideoService_GetVideoCourse(t *testing.T) {
	mockVideos := new(MockVideoRepository)
	mockCourses := new(MockCourseRepository)
	mockChannels := new(MockChannelRepository)
	service := services.NewVideoService(mockVideos, mockCourses, mockChannels, nil, nil)

	// The course still lists a video that no longer exists; the read filters it.
	course := &models.Course{ID: "course-1", UserID: "owner-1", Videos: models.StringList{"video-1", "video-gone"}}
	mockCourses.On("GetByID", "course-1").Return(course, nil).Once()
	mockVideos.On("GetByIDs", []string{"video-1", "video-gone"}).Return([]models.Video{{ID: "video-1"}}, nil).Once()
	mockChannels.On("GetByUser", "viewer-1").Return(nil, fmt.Errorf("channel not found")).Once()

	result, err := service.GetVideoCourse("course-1", "viewer-1")
	assert.NoError(t, err)
	assert.Len(t, result.Videos, 1)
	assert.Equal(t, "video-1", result.Videos[0].ID)
	assert.Nil(t, result.Channel)
	mockCourses.AssertExpectations(t)
	mockVideos.AssertExpectations(t)
	mockChannels.AssertExpectations(t)
}

func TestVideoService_UpdateVideo(t *testing.T) {
	mockVideos := new(MockVideoRepository)
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	service := services.NewVideoService(mockVideos, nil, nil, store, notifier)

	video := &models.Video{ID: "video-1", Video: "https://media.test/videos/old.mp4", UserID: "user-123"}
	newFile := &services.Upload{Filename: "new.mp4", ContentType: "video/mp4", Data: []byte("vid")}

	// Replacing the file removes the old stored asset first.
	mockVideos.On("GetByID", "video-1").Return(video, nil).Once()
	mockVideos.On("Update", mock.AnythingOfType("*models.Video")).Return(nil).Once()

	updated, err := service.UpdateVideo(context.Background(), "video-1", "user-123", services.VideoFields{}, newFile, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://media.test/videos/old.mp4"}, store.removed)
	assert.Equal(t, "https://media.test/videos/new.mp4", updated.Video)
	assert.Equal(t, []string{services.EventVideoUpdated}, notifier.events)
	mockVideos.AssertExpectations(t)
}

func TestVideoService_DeleteVideo(t *testing.T) {
	mockVideos := new(MockVideoRepository)
	notifier := &fakeNotifier{}
	service := services.NewVideoService(mockVideos, nil, nil, nil, notifier)

	video := &models.Video{ID: "video-1", UserID: "user-123"}

	// Only the record goes; the stored assets stay behind.
	mockVideos.On("GetByID", "video-1").Return(video, nil).Once()
	mockVideos.On("Delete", "video-1").Return(nil).Once()

	err := service.DeleteVideo("video-1", "user-123")
	assert.NoError(t, err)
	assert.Equal(t, []string{services.EventVideoDeleted}, notifier.events)
	mockVideos.AssertExpectations(t)

	// Test not the video owner
	mockVideos.On("GetByID", "video-1").Return(video, nil).Once()
	err = service.DeleteVideo("video-1", "someone-else")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockVideos.AssertExpectations(t)
}
