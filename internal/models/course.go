package models

import "gorm.io/gorm"

// Course is a priced bundle of videos published under a channel. The owner is
// denormalized to the user so ownership checks do not need the channel.
type Course struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string  `json:"title" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"required,min=3,max=5000"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Avatar      string  `json:"avatar"`

	Videos StringList `json:"videos" gorm:"serializer:json"`

	UserID string `json:"user" gorm:"index;type:varchar(36)"`

	gorm.Model `json:"-"`
}
