package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursus/internal/apperrors"
	"kursus/internal/models"
)

// GORMVideoRepository is a GORM implementation of VideoRepository.
type GORMVideoRepository struct {
	db *gorm.DB
}

// NewGORMVideoRepository creates a new instance of GORMVideoRepository.
func NewGORMVideoRepository(db *gorm.DB) *GORMVideoRepository {
	return &GORMVideoRepository{
		db: db,
	}
}

// GetByID retrieves a single video by its ID.
func (r *GORMVideoRepository) GetByID(id string) (*models.Video, error) {
	var video models.Video
	if err := r.db.First(&video, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("video %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get video by ID %s: %w", id, err)
	}
	return &video, nil
}

// GetByUser retrieves all videos owned by a user.
func (r *GORMVideoRepository) GetByUser(userID string) ([]models.Video, error) {
	var videos []models.Video
	if err := r.db.Find(&videos, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get videos for user %s: %w", userID, err)
	}
	return videos, nil
}

// GetByIDs retrieves the videos whose IDs are in the list. Dangling IDs from
// the parent course's list simply do not appear in the result.
func (r *GORMVideoRepository) GetByIDs(ids []string) ([]models.Video, error) {
	if len(ids) == 0 {
		return []models.Video{}, nil
	}
	var videos []models.Video
	if err := r.db.Find(&videos, "id IN ?", ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get videos by IDs: %w", err)
	}
	return videos, nil
}

// Create creates a new video.
func (r *GORMVideoRepository) Create(video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.New().String()
	}
	if err := r.db.Create(video).Error; err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// Update saves the full video record.
func (r *GORMVideoRepository) Update(video *models.Video) error {
	res := r.db.Save(video)
	if res.Error != nil {
		return fmt.Errorf("failed to update video: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("video %s for update: %w", video.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes a video by its ID.
func (r *GORMVideoRepository) Delete(id string) error {
	res := r.db.Delete(&models.Video{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete video: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("video %s for deletion: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteByUser removes every video owned by a user. Zero rows is not an error.
func (r *GORMVideoRepository) DeleteByUser(userID string) error {
	if err := r.db.Delete(&models.Video{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete videos for user %s: %w", userID, err)
	}
	return nil
}
