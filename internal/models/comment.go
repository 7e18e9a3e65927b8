package models

import "gorm.io/gorm"

// Comment is a user's comment on a video.
type Comment struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID  string `json:"user" gorm:"index;type:varchar(36)"`
	VideoID string `json:"video" gorm:"index;type:varchar(36)"`
	Comment string `json:"comment" validate:"required,min=3,max=200"`

	gorm.Model `json:"-"`
}
