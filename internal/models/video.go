package models

import "gorm.io/gorm"

// Video is a media asset belonging to a course. The course keeps the
// membership via its video list; the video itself only knows its owner.
type Video struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string `json:"title" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,min=3,max=100"`
	Video       string `json:"video" validate:"required"`
	Thumbnail   string `json:"thumbnail"`

	UserID string `json:"user" gorm:"index;type:varchar(36)"`

	gorm.Model `json:"-"`
}
