package repositories

import "kursus/internal/models"

// CourseRepository defines the interface for course data access.
type CourseRepository interface {
	GetAll() ([]models.Course, error)
	GetByID(id string) (*models.Course, error)
	GetByUser(userID string) ([]models.Course, error)
	GetByIDs(ids []string) ([]models.Course, error)
	Create(course *models.Course) error
	Update(course *models.Course) error
	Delete(id string) error
	DeleteByUser(userID string) error
}
