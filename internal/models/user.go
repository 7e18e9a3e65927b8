package models

import (
	"time"

	"gorm.io/gorm"
)

// StringList is a JSON-serialized list column. The list is saved as part of
// the whole row, so concurrent edits are last write wins on the full record.
type StringList []string

// Contains reports whether id is present in the list.
func (l StringList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Remove returns the list without id.
func (l StringList) Remove(id string) StringList {
	out := make(StringList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// User represents a platform account.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=50"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash
	IsAdmin  bool   `json:"isAdmin" gorm:"default:false"`
	Avatar   string `json:"avatar"`

	Verified            bool       `json:"verified" gorm:"default:false"`
	VerificationCode    string     `json:"-" gorm:"type:varchar(6)"`
	VerificationExpires *time.Time `json:"-"`

	Favorites StringList `json:"favorite" gorm:"serializer:json"`
	Cart      StringList `json:"cart" gorm:"serializer:json"`

	gorm.Model `json:"-"`
}

// Sanitized returns a copy safe to hand back to clients.
func (u User) Sanitized() User {
	u.Password = ""
	u.VerificationCode = ""
	u.VerificationExpires = nil
	return u
}
