package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursus/internal/apperrors"
	"kursus/internal/models"
)

// GORMGroupRepository is a GORM implementation of GroupRepository.
type GORMGroupRepository struct {
	db *gorm.DB
}

// NewGORMGroupRepository creates a new instance of GORMGroupRepository.
func NewGORMGroupRepository(db *gorm.DB) *GORMGroupRepository {
	return &GORMGroupRepository{
		db: db,
	}
}

// GetByID retrieves a single group by its ID.
func (r *GORMGroupRepository) GetByID(id string) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("group %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get group by ID %s: %w", id, err)
	}
	return &group, nil
}

// GetByInvitationLink retrieves a group by its opaque join token.
func (r *GORMGroupRepository) GetByInvitationLink(link string) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, "invitation_link = ?", link).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("group with invitation link: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get group by invitation link: %w", err)
	}
	return &group, nil
}

// Create creates a new group.
func (r *GORMGroupRepository) Create(group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if err := r.db.Create(group).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// Update saves the full group record.
func (r *GORMGroupRepository) Update(group *models.Group) error {
	res := r.db.Save(group)
	if res.Error != nil {
		return fmt.Errorf("failed to update group: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("group %s for update: %w", group.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes a group by its ID.
func (r *GORMGroupRepository) Delete(id string) error {
	res := r.db.Delete(&models.Group{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete group: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("group %s for deletion: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
