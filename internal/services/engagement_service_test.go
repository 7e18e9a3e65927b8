package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kursus/internal/apperrors"
	"kursus/internal/models"
	"kursus/internal/services"
)

func TestEngagementService_ToggleFavorite(t *testing.T) {
	mockUsers := new(MockUserRepository)
	notifier := &fakeNotifier{}
	service := services.NewEngagementService(mockUsers, nil, nil, nil, nil, notifier)

	user := &models.User{ID: "user-123", Favorites: models.StringList{}}

	// First toggle adds the course.
	mockUsers.On("GetByID", "user-123").Return(user, nil).Twice()
	mockUsers.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Twice()

	toggled, err := service.ToggleFavorite("user-123", "course-1")
	assert.NoError(t, err)
	assert.True(t, toggled.Favorites.Contains("course-1"))

	// Second toggle removes it again.
	toggled, err = service.ToggleFavorite("user-123", "course-1")
	assert.NoError(t, err)
	assert.False(t, toggled.Favorites.Contains("course-1"))
	assert.Equal(t, []string{services.EventUserUpdated, services.EventUserUpdated}, notifier.events)
	mockUsers.AssertExpectations(t)
}

func TestEngagementService_ToggleCart(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := services.NewEngagementService(mockUsers, nil, nil, nil, nil, nil)

	user := &models.User{ID: "user-123", Cart: models.StringList{"course-1"}}

	// The course is already in the cart, so the toggle removes it.
	mockUsers.On("GetByID", "user-123").Return(user, nil).Once()
	mockUsers.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	toggled, err := service.ToggleCart("user-123", "course-1")
	assert.NoError(t, err)
	assert.False(t, toggled.Cart.Contains("course-1"))
	mockUsers.AssertExpectations(t)
}

func TestEngagementService_ListFavoriteCourses(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockCourses := new(MockCourseRepository)
	service := services.NewEngagementService(mockUsers, mockCourses, nil, nil, nil, nil)

	// One favorite points at a deleted course; the read filters it.
	user := &models.User{ID: "user-123", Favorites: models.StringList{"course-1", "course-gone"}}
	mockUsers.On("GetByID", "user-123").Return(user, nil).Once()
	mockCourses.On("GetByIDs", []string{"course-1", "course-gone"}).Return([]models.Course{{ID: "course-1"}}, nil).Once()

	courses, err := service.ListFavoriteCourses("user-123")
	assert.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.Equal(t, "course-1", courses[0].ID)
	mockUsers.AssertExpectations(t)
	mockCourses.AssertExpectations(t)
}

func TestEngagementService_AddOrUpdateReview(t *testing.T) {
	mockCourses := new(MockCourseRepository)
	mockReviews := new(MockReviewRepository)
	service := services.NewEngagementService(nil, mockCourses, nil, mockReviews, nil, nil)

	course := &models.Course{ID: "course-1"}

	// Test first review creates a row
	mockCourses.On("GetByID", "course-1").Return(course, nil).Once()
	mockReviews.On("GetByUserAndCourse", "user-123", "course-1").Return(nil, fmt.Errorf("review not found")).Once()
	mockReviews.On("Create", mock.AnythingOfType("*models.Review")).Return(nil).Once()

	review, err := service.AddOrUpdateReview("user-123", "course-1", 4, "Solid course")
	assert.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	mockReviews.AssertExpectations(t)

	// Test repeat submission updates the existing row in place
	existing := &models.Review{ID: "review-1", UserID: "user-123", CourseID: "course-1", Rating: 4, Comment: "Solid course"}
	mockCourses.On("GetByID", "course-1").Return(course, nil).Once()
	mockReviews.On("GetByUserAndCourse", "user-123", "course-1").Return(existing, nil).Once()
	mockReviews.On("Update", existing).Return(nil).Once()

	review, err = service.AddOrUpdateReview("user-123", "course-1", 2, "Changed my mind")
	assert.NoError(t, err)
	assert.Equal(t, "review-1", review.ID)
	assert.Equal(t, 2, review.Rating)
	assert.Equal(t, "Changed my mind", review.Comment)
	mockReviews.AssertExpectations(t)

	// Test rating bounds
	_, err = service.AddOrUpdateReview("user-123", "course-1", 0, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = service.AddOrUpdateReview("user-123", "course-1", 6, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Test reviewing a missing course
	mockCourses.On("GetByID", "course-gone").Return(nil, fmt.Errorf("course course-gone: %w", apperrors.ErrNotFound)).Once()
	_, err = service.AddOrUpdateReview("user-123", "course-gone", 3, "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockCourses.AssertExpectations(t)
}

func TestEngagementService_ListReviews(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	service := services.NewEngagementService(nil, nil, nil, mockReviews, nil, nil)

	// An unreviewed course reads as not found rather than an empty list.
	mockReviews.On("GetByCourse", "course-1").Return([]models.Review{}, nil).Once()
	_, err := service.ListReviews("course-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockReviews.AssertExpectations(t)
}

func TestEngagementService_Comments(t *testing.T) {
	mockVideos := new(MockVideoRepository)
	mockComments := new(MockCommentRepository)
	service := services.NewEngagementService(nil, nil, mockVideos, nil, mockComments, nil)

	video := &models.Video{ID: "video-1"}

	// Test adding a comment
	mockVideos.On("GetByID", "video-1").Return(video, nil).Once()
	mockComments.On("Create", mock.AnythingOfType("*models.Comment")).Return(nil).Once()

	comment, err := service.AddComment("user-123", "video-1", "Great explanation")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", comment.UserID)
	mockComments.AssertExpectations(t)

	// Test commenting on a missing video
	mockVideos.On("GetByID", "video-gone").Return(nil, fmt.Errorf("video video-gone: %w", apperrors.ErrNotFound)).Once()
	_, err = service.AddComment("user-123", "video-gone", "Hello")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockVideos.AssertExpectations(t)

	// Test only the author may edit
	stored := &models.Comment{ID: "comment-1", UserID: "user-123", VideoID: "video-1", Comment: "Great explanation"}
	mockComments.On("GetByID", "comment-1").Return(stored, nil).Once()
	_, err = service.UpdateComment("comment-1", "someone-else", "Edited")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockComments.AssertExpectations(t)

	// Test the author edits
	mockComments.On("GetByID", "comment-1").Return(stored, nil).Once()
	mockComments.On("Update", stored).Return(nil).Once()
	updated, err := service.UpdateComment("comment-1", "user-123", "Edited")
	assert.NoError(t, err)
	assert.Equal(t, "Edited", updated.Comment)
	mockComments.AssertExpectations(t)

	// Test only the author may delete
	mockComments.On("GetByID", "comment-1").Return(stored, nil).Once()
	err = service.DeleteComment("comment-1", "someone-else")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	mockComments.On("GetByID", "comment-1").Return(stored, nil).Once()
	mockComments.On("Delete", "comment-1").Return(nil).Once()
	err = service.DeleteComment("comment-1", "user-123")
	assert.NoError(t, err)
	mockComments.AssertExpectations(t)
}
