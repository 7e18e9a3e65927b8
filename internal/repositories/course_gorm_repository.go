package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursus/internal/apperrors"
	"kursus/internal/models"
)

// GORMCourseRepository is a GORM implementation of CourseRepository.
type GORMCourseRepository struct {
	db *gorm.DB
}

// NewGORMCourseRepository creates a new instance of GORMCourseRepository.
func NewGORMCourseRepository(db *gorm.DB) *GORMCourseRepository {
	return &GORMCourseRepository{
		db: db,
	}
}

// GetAll retrieves all courses.
func (r *GORMCourseRepository) GetAll() ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to get all courses: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a single course by its ID.
func (r *GORMCourseRepository) GetByID(id string) (*models.Course, error) {
	var course models.Course
	if err := r.db.First(&course, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("course %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get course by ID %s: %w", id, err)
	}
	return &course, nil
}

// GetByUser retrieves all courses owned by a user.
func (r *GORMCourseRepository) GetByUser(userID string) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.Find(&courses, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get courses for user %s: %w", userID, err)
	}
	return courses, nil
}

// GetByIDs retrieves the courses whose IDs are in the list. Dangling IDs are
// silently absent from the result; callers reconcile lazily on read.
func (r *GORMCourseRepository) GetByIDs(ids []string) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}
	var courses []models.Course
	if err := r.db.Find(&courses, "id IN ?", ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get courses by IDs: %w", err)
	}
	return courses, nil
}

// Create creates a new course.
func (r *GORMCourseRepository) Create(course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	if err := r.db.Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// Update saves the full course record.
func (r *GORMCourseRepository) Update(course *models.Course) error {
	res := r.db.Save(course)
	if res.Error != nil {
		return fmt.Errorf("failed to update course: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("course %s for update: %w", course.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes a course by its ID.
func (r *GORMCourseRepository) Delete(id string) error {
	res := r.db.Delete(&models.Course{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete course: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("course %s for deletion: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteByUser removes every course owned by a user. Zero rows is not an error.
func (r *GORMCourseRepository) DeleteByUser(userID string) error {
	if err := r.db.Delete(&models.Course{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete courses for user %s: %w", userID, err)
	}
	return nil
}
