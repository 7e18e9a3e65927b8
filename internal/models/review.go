package models

import "gorm.io/gorm"

// Review is a user's rating of a course. At most one review exists per
// (user, course) pair; a repeat submission updates the existing row.
type Review struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID   string `json:"user" gorm:"index;type:varchar(36)"`
	CourseID string `json:"course" gorm:"index;type:varchar(36)"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"omitempty,max=500"`

	gorm.Model `json:"-"`
}
