package repositories

import "kursus/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByCourse(courseID string) ([]models.Review, error)
	GetByUserAndCourse(userID, courseID string) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
}
