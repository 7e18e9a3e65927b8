package services

import (
	"fmt"

	"kursus/internal/apperrors"
	"kursus/internal/models"
	"kursus/internal/repositories"
)

// EngagementService handles per-user favorites and cart, course reviews and
// video comments.
type EngagementService struct {
	userRepo    repositories.UserRepository
	courseRepo  repositories.CourseRepository
	videoRepo   repositories.VideoRepository
	reviewRepo  repositories.ReviewRepository
	commentRepo repositories.CommentRepository
	notifier    Notifier
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	videoRepo repositories.VideoRepository,
	reviewRepo repositories.ReviewRepository,
	commentRepo repositories.CommentRepository,
	notifier Notifier,
) *EngagementService {
	return &EngagementService{
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		videoRepo:   videoRepo,
		reviewRepo:  reviewRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
	}
}

// ToggleFavorite flips the course's presence in the user's favorites:
// present means remove, absent means add. Applying it twice is a no-op.
func (s *EngagementService) ToggleFavorite(userID, courseID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if user.Favorites.Contains(courseID) {
		user.Favorites = user.Favorites.Remove(courseID)
	} else {
		user.Favorites = append(user.Favorites, courseID)
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	sanitized := user.Sanitized()
	broadcast(s.notifier, EventUserUpdated, sanitized)
	return &sanitized, nil
}

// ToggleCart flips the course's presence in the user's cart.
func (s *EngagementService) ToggleCart(userID, courseID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if user.Cart.Contains(courseID) {
		user.Cart = user.Cart.Remove(courseID)
	} else {
		user.Cart = append(user.Cart, courseID)
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	sanitized := user.Sanitized()
	broadcast(s.notifier, EventUserUpdated, sanitized)
	return &sanitized, nil
}

// ListFavoriteCourses resolves the user's favorite references. Dangling
// references to deleted courses are filtered on read.
func (s *EngagementService) ListFavoriteCourses(userID string) ([]models.Course, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.GetByIDs(user.Favorites)
}

// ListCartCourses resolves the user's cart references, filtering dangles.
func (s *EngagementService) ListCartCourses(userID string) ([]models.Course, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.GetByIDs(user.Cart)
}

// AddOrUpdateReview records the user's rating of a course. A user has at
// most one review per course; a repeat submission updates it in place.
func (s *EngagementService) AddOrUpdateReview(userID, courseID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", apperrors.ErrValidation)
	}
	if _, err := s.courseRepo.GetByID(courseID); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.GetByUserAndCourse(userID, courseID)
	if err == nil {
		existing.Rating = rating
		existing.Comment = comment
		if err := s.reviewRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	review := &models.Review{
		UserID:   userID,
		CourseID: courseID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews returns every review of a course, not-found when empty.
func (s *EngagementService) ListReviews(courseID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.GetByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("no reviews found: %w", apperrors.ErrNotFound)
	}
	return reviews, nil
}

// AddComment records a comment on a video, which must exist.
func (s *EngagementService) AddComment(userID, videoID, text string) (*models.Comment, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:  userID,
		VideoID: videoID,
		Comment: text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns every comment on a video, not-found when empty.
func (s *EngagementService) ListComments(videoID string) ([]models.Comment, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.GetByVideo(videoID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, fmt.Errorf("no comments found: %w", apperrors.ErrNotFound)
	}
	return comments, nil
}

// UpdateComment edits a comment. Only the author may edit.
func (s *EngagementService) UpdateComment(commentID, callerID, text string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != callerID {
		return nil, fmt.Errorf("comment %s: %w", commentID, apperrors.ErrForbidden)
	}

	comment.Comment = text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the author may delete.
func (s *EngagementService) DeleteComment(commentID, callerID string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment.UserID != callerID {
		return fmt.Errorf("comment %s: %w", commentID, apperrors.ErrForbidden)
	}
	return s.commentRepo.Delete(commentID)
}
