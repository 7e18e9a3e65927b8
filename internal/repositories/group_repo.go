package repositories

import "kursus/internal/models"

// GroupRepository defines the interface for group data access.
type GroupRepository interface {
	GetByID(id string) (*models.Group, error)
	GetByInvitationLink(link string) (*models.Group, error)
	Create(group *models.Group) error
	Update(group *models.Group) error
	Delete(id string) error
}
