package repositories

import "kursus/internal/models"

// ChannelRepository defines the interface for channel data access.
type ChannelRepository interface {
	GetAll() ([]models.Channel, error)
	GetByID(id string) (*models.Channel, error)
	GetByUser(userID string) (*models.Channel, error)
	Create(channel *models.Channel) error
	Update(channel *models.Channel) error
	Delete(id string) error
	DeleteByUser(userID string) error
}
