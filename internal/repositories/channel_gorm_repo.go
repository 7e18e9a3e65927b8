package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursus/internal/apperrors"
	"kursus/internal/models"
)

// GORMChannelRepository is a GORM implementation of ChannelRepository.
type GORMChannelRepository struct {
	db *gorm.DB
}

// NewGORMChannelRepository creates a new instance of GORMChannelRepository.
func NewGORMChannelRepository(db *gorm.DB) *GORMChannelRepository {
	return &GORMChannelRepository{
		db: db,
	}
}

// GetAll retrieves all channels.
func (r *GORMChannelRepository) GetAll() ([]models.Channel, error) {
	var channels []models.Channel
	if err := r.db.Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("failed to get all channels: %w", err)
	}
	return channels, nil
}

// GetByID retrieves a channel by its ID.
func (r *GORMChannelRepository) GetByID(id string) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.First(&channel, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("channel %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get channel by ID %s: %w", id, err)
	}
	return &channel, nil
}

// GetByUser retrieves the channel owned by a user. One channel per user.
func (r *GORMChannelRepository) GetByUser(userID string) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.First(&channel, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("channel for user %s: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get channel for user %s: %w", userID, err)
	}
	return &channel, nil
}

// Create creates a new channel.
func (r *GORMChannelRepository) Create(channel *models.Channel) error {
	if channel.ID == "" {
		channel.ID = uuid.New().String()
	}
	if err := r.db.Create(channel).Error; err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}
	return nil
}

// Update saves the full channel record.
func (r *GORMChannelRepository) Update(channel *models.Channel) error {
	res := r.db.Save(channel)
	if res.Error != nil {
		return fmt.Errorf("failed to update channel: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("channel %s for update: %w", channel.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes a channel by its ID.
func (r *GORMChannelRepository) Delete(id string) error {
	res := r.db.Delete(&models.Channel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete channel: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("channel %s for deletion: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteByUser removes every channel owned by a user. Part of the account
// deletion cascade; zero rows is not an error.
func (r *GORMChannelRepository) DeleteByUser(userID string) error {
	if err := r.db.Delete(&models.Channel{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete channels for user %s: %w", userID, err)
	}
	return nil
}
