package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursus/internal/apperrors"
	"kursus/internal/models"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// GetByCourse retrieves all reviews for a course.
func (r *GORMReviewRepository) GetByCourse(courseID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Find(&reviews, "course_id = ?", courseID).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews for course %s: %w", courseID, err)
	}
	return reviews, nil
}

// GetByUserAndCourse retrieves the single review a user left on a course.
func (r *GORMReviewRepository) GetByUserAndCourse(userID, courseID string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "user_id = ? AND course_id = ?", userID, courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review by user %s on course %s: %w", userID, courseID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review for user %s on course %s: %w", userID, courseID, err)
	}
	return &review, nil
}

// Create creates a new review.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update saves the full review record.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	res := r.db.Save(review)
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review %s for update: %w", review.ID, apperrors.ErrNotFound)
	}
	return nil
}
