package models

import "gorm.io/gorm"

// Channel is a user's publishing identity, the container for courses and groups.
// One channel per user, enforced by lookup-by-owner.
type Channel struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,min=3,max=100"`
	Avatar      string `json:"avatar"`
	Background  string `json:"background"`

	Courses StringList `json:"courses" gorm:"serializer:json"`
	Groups  StringList `json:"groups" gorm:"serializer:json"`

	UserID string `json:"user" gorm:"index;type:varchar(36)"`

	gorm.Model `json:"-"`
}
