package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursus/internal/apperrors"
	"kursus/internal/models"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// GetByID retrieves a single comment by its ID.
func (r *GORMCommentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("comment %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment by ID %s: %w", id, err)
	}
	return &comment, nil
}

// GetByVideo retrieves all comments on a video.
func (r *GORMCommentRepository) GetByVideo(videoID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Find(&comments, "video_id = ?", videoID).Error; err != nil {
		return nil, fmt.Errorf("failed to get comments for video %s: %w", videoID, err)
	}
	return comments, nil
}

// Create creates a new comment.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Update saves the full comment record.
func (r *GORMCommentRepository) Update(comment *models.Comment) error {
	res := r.db.Save(comment)
	if res.Error != nil {
		return fmt.Errorf("failed to update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment %s for update: %w", comment.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes a comment by its ID.
func (r *GORMCommentRepository) Delete(id string) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment %s for deletion: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteByUser removes every comment authored by a user. Zero rows is not an error.
func (r *GORMCommentRepository) DeleteByUser(userID string) error {
	if err := r.db.Delete(&models.Comment{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete comments for user %s: %w", userID, err)
	}
	return nil
}
