package models

import "gorm.io/gorm"

// MemberRole is the role of a user inside a group.
type MemberRole string

const (
	RoleOwner    MemberRole = "owner"
	RoleSubAdmin MemberRole = "subadmin"
	RoleMember   MemberRole = "member"
)

// GroupMember ties a user to their role in a group. A single typed list
// replaces the parallel members/subAdmins arrays so the owner can never be
// missing from the membership.
type GroupMember struct {
	UserID string     `json:"user"`
	Role   MemberRole `json:"role"`
}

// MemberList is the JSON-serialized membership of a group.
type MemberList []GroupMember

// RoleOf returns the member's role, or "" if the user is not a member.
func (m MemberList) RoleOf(userID string) MemberRole {
	for _, gm := range m {
		if gm.UserID == userID {
			return gm.Role
		}
	}
	return ""
}

// Remove returns the list without the given user.
func (m MemberList) Remove(userID string) MemberList {
	out := make(MemberList, 0, len(m))
	for _, gm := range m {
		if gm.UserID != userID {
			out = append(out, gm)
		}
	}
	return out
}

// Group is a membership-gated discussion community under a channel.
type Group struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string `json:"title" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=3,max=500"`
	Avatar      string `json:"avatar"`
	Public      bool   `json:"public" gorm:"default:true"`

	// Opaque random join token. Random enough that collisions are not a
	// practical concern, but uniqueness is not enforced by construction.
	InvitationLink string `json:"invitationLink" gorm:"index;type:varchar(64)"`

	Members MemberList `json:"members" gorm:"serializer:json"`

	UserID    string `json:"user" gorm:"index;type:varchar(36)"`
	ChannelID string `json:"channel" gorm:"index;type:varchar(36)"`

	gorm.Model `json:"-"`
}
