package repositories

import "kursus/internal/models"

// VideoRepository defines the interface for video data access.
type VideoRepository interface {
	GetByID(id string) (*models.Video, error)
	GetByUser(userID string) ([]models.Video, error)
	GetByIDs(ids []string) ([]models.Video, error)
	Create(video *models.Video) error
	Update(video *models.Video) error
	Delete(id string) error
	DeleteByUser(userID string) error
}
