package repositories

import "kursus/internal/models"

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	GetByID(id string) (*models.Comment, error)
	GetByVideo(videoID string) ([]models.Comment, error)
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(id string) error
	DeleteByUser(userID string) error
}
