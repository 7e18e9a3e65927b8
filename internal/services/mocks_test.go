package services_test

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"kursus/internal/models"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockChannelRepository is a mock implementation of repositories.ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) GetAll() ([]models.Channel, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Channel), args.Error(1)
}

func (m *MockChannelRepository) GetByID(id string) (*models.Channel, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Channel), args.Error(1)
}

func (m *MockChannelRepository) GetByUser(userID string) (*models.Channel, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Channel), args.Error(1)
}

func (m *MockChannelRepository) Create(channel *models.Channel) error {
	args := m.Called(channel)
	return args.Error(0)
}

func (m *MockChannelRepository) Update(channel *models.Channel) error {
	args := m.Called(channel)
	return args.Error(0)
}

func (m *MockChannelRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockChannelRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockCourseRepository is a mock implementation of repositories.CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) GetAll() ([]models.Course, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockCourseRepository) GetByID(id string) (*models.Course, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepository) GetByUser(userID string) ([]models.Course, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockCourseRepository) GetByIDs(ids []string) ([]models.Course, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockCourseRepository) Create(course *models.Course) error {
	args := m.Called(course)
	return args.Error(0)
}

func (m *MockCourseRepository) Update(course *models.Course) error {
	args := m.Called(course)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCourseRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockVideoRepository is a mock implementation of repositories.VideoRepository
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) GetByID(id string) (*models.Video, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoRepository) GetByUser(userID string) ([]models.Video, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockVideoRepository) GetByIDs(ids []string) ([]models.Video, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockVideoRepository) Create(video *models.Video) error {
	args := m.Called(video)
	return args.Error(0)
}

func (m *MockVideoRepository) Update(video *models.Video) error {
	args := m.Called(video)
	return args.Error(0)
}

func (m *MockVideoRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockVideoRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockGroupRepository is a mock implementation of repositories.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) GetByID(id string) (*models.Group, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) GetByInvitationLink(link string) (*models.Group, error) {
	args := m.Called(link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) Create(group *models.Group) error {
	args := m.Called(group)
	return args.Error(0)
}

func (m *MockGroupRepository) Update(group *models.Group) error {
	args := m.Called(group)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCommentRepository is a mock implementation of repositories.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) GetByID(id string) (*models.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByVideo(videoID string) ([]models.Comment, error) {
	args := m.Called(videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) GetByCourse(courseID string) ([]models.Review, error) {
	args := m.Called(courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByUserAndCourse(userID, courseID string) (*models.Review, error) {
	args := m.Called(userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

// fakeStore keeps uploads in memory and returns predictable references.
type fakeStore struct {
	stored  []string
	removed []string
	failing bool
}

func (s *fakeStore) Store(ctx context.Context, category, filename, contentType string, data []byte) (string, error) {
	if s.failing {
		return "", fmt.Errorf("storage unavailable")
	}
	ref := fmt.Sprintf("https://media.test/%s/%s", category, filename)
	s.stored = append(s.stored, ref)
	return ref, nil
}

func (s *fakeStore) Remove(ctx context.Context, ref string) error {
	s.removed = append(s.removed, ref)
	return nil
}

// fakeMailer records the last verification code it was asked to send.
type fakeMailer struct {
	lastEmail string
	lastCode  string
}

func (m *fakeMailer) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	m.lastEmail = toEmail
	m.lastCode = code
	return nil
}

// fakeNotifier records broadcast events instead of publishing them.
type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) Broadcast(event string, payload interface{}) error {
	n.events = append(n.events, event)
	return nil
}
