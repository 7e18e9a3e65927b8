package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"kursus/internal/apperrors"
	"kursus/internal/models"
	"kursus/internal/repositories"
	"kursus/pkg/storage"
)

// GroupService handles business logic for discussion groups and their
// membership. Per (user, group) pair the states are non-member, member,
// sub-admin and owner; every transition below is guarded accordingly.
type GroupService struct {
	groupRepo   repositories.GroupRepository
	channelRepo repositories.ChannelRepository
	store       storage.Store
	notifier    Notifier
}

// NewGroupService creates a new GroupService.
func NewGroupService(
	groupRepo repositories.GroupRepository,
	channelRepo repositories.ChannelRepository,
	store storage.Store,
	notifier Notifier,
) *GroupService {
	return &GroupService{
		groupRepo:   groupRepo,
		channelRepo: channelRepo,
		store:       store,
		notifier:    notifier,
	}
}

// GroupFields carries the creatable group attributes.
type GroupFields struct {
	Title       string `json:"title" form:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" form:"description" validate:"required,min=3,max=500"`
	Public      bool   `json:"public" form:"public"`
}

// newInvitationLink generates the opaque join token. Random enough that a
// collision is not a practical concern; uniqueness is not enforced.
func newInvitationLink() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate invitation link: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// AddGroup creates a group under a channel the caller owns. The avatar is
// mandatory, the caller becomes the sole initial member with the owner role,
// and the group ID is appended to the channel's group list.
func (s *GroupService) AddGroup(ctx context.Context, channelID, callerID string, fields GroupFields, avatar *Upload) (*models.Group, error) {
	channel, err := s.channelRepo.GetByID(channelID)
	if err != nil {
		return nil, err
	}
	if channel.UserID != callerID {
		return nil, fmt.Errorf("channel %s: %w", channelID, apperrors.ErrForbidden)
	}
	if avatar == nil {
		return nil, fmt.Errorf("avatar image is required: %w", apperrors.ErrValidation)
	}

	avatarRef, err := s.store.Store(ctx, storage.CategoryGroupAvatar, avatar.Filename, avatar.ContentType, avatar.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store group avatar: %w", apperrors.ErrDependency)
	}

	link, err := newInvitationLink()
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Title:          fields.Title,
		Description:    fields.Description,
		Avatar:         avatarRef,
		Public:         fields.Public,
		InvitationLink: link,
		Members:        models.MemberList{{UserID: callerID, Role: models.RoleOwner}},
		UserID:         callerID,
		ChannelID:      channelID,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}

	channel.Groups = append(channel.Groups, group.ID)
	if err := s.channelRepo.Update(channel); err != nil {
		return nil, err
	}

	broadcast(s.notifier, EventGroupAdded, group)
	return group, nil
}

// GetGroup returns a group by its ID.
func (s *GroupService) GetGroup(groupID string) (*models.Group, error) {
	return s.groupRepo.GetByID(groupID)
}

func (s *GroupService) join(group *models.Group, userID string) (*models.Group, error) {
	if group.Members.RoleOf(userID) != "" {
		return nil, apperrors.ErrAlreadyMember
	}
	group.Members = append(group.Members, models.GroupMember{UserID: userID, Role: models.RoleMember})
	if err := s.groupRepo.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

// JoinByGroupID adds the caller to the group as a plain member.
func (s *GroupService) JoinByGroupID(groupID, userID string) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	return s.join(group, userID)
}

// JoinByInvitationLink adds the caller to the group the link points at.
func (s *GroupService) JoinByInvitationLink(link, userID string) (*models.Group, error) {
	group, err := s.groupRepo.GetByInvitationLink(link)
	if err != nil {
		return nil, err
	}
	return s.join(group, userID)
}

// Exit removes the caller from the group. The owner can never exit.
func (s *GroupService) Exit(groupID, userID string) error {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return err
	}
	role := group.Members.RoleOf(userID)
	if role == "" {
		return fmt.Errorf("you are not in this group: %w", apperrors.ErrForbidden)
	}
	if role == models.RoleOwner {
		return fmt.Errorf("owner cannot exit the group: %w", apperrors.ErrForbidden)
	}

	group.Members = group.Members.Remove(userID)
	return s.groupRepo.Update(group)
}

// RemoveMember removes the target from the group. Only the owner or a
// sub-admin may remove, and the owner can never be the target.
func (s *GroupService) RemoveMember(groupID, callerID, targetID string) error {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return err
	}
	targetRole := group.Members.RoleOf(targetID)
	if targetRole == "" {
		return fmt.Errorf("user is not in this group: %w", apperrors.ErrForbidden)
	}
	if targetRole == models.RoleOwner {
		return fmt.Errorf("cannot remove the owner of the group: %w", apperrors.ErrForbidden)
	}
	callerRole := group.Members.RoleOf(callerID)
	if callerRole != models.RoleOwner && callerRole != models.RoleSubAdmin {
		return fmt.Errorf("removing members from group %s: %w", groupID, apperrors.ErrForbidden)
	}

	group.Members = group.Members.Remove(targetID)
	return s.groupRepo.Update(group)
}

// PromoteSubAdmin raises an existing plain member to sub-admin. Only the
// owner or a sub-admin may promote.
func (s *GroupService) PromoteSubAdmin(groupID, callerID, targetID string) error {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return err
	}
	targetRole := group.Members.RoleOf(targetID)
	if targetRole == "" {
		return fmt.Errorf("user is not a member of the group: %w", apperrors.ErrForbidden)
	}
	callerRole := group.Members.RoleOf(callerID)
	if callerRole != models.RoleOwner && callerRole != models.RoleSubAdmin {
		return fmt.Errorf("promoting members in group %s: %w", groupID, apperrors.ErrForbidden)
	}
	if targetRole == models.RoleOwner || targetRole == models.RoleSubAdmin {
		return fmt.Errorf("user is already an administrator: %w", apperrors.ErrForbidden)
	}

	for i := range group.Members {
		if group.Members[i].UserID == targetID {
			group.Members[i].Role = models.RoleSubAdmin
			break
		}
	}
	return s.groupRepo.Update(group)
}

// DeleteGroup removes the group and pulls its ID from the channel's group
// list. Only the group owner may delete.
func (s *GroupService) DeleteGroup(channelID, groupID, callerID string) error {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return err
	}
	channel, err := s.channelRepo.GetByID(channelID)
	if err != nil {
		return err
	}
	if group.UserID != callerID {
		return fmt.Errorf("group %s: %w", groupID, apperrors.ErrForbidden)
	}

	if err := s.groupRepo.Delete(groupID); err != nil {
		return err
	}
	channel.Groups = channel.Groups.Remove(groupID)
	return s.channelRepo.Update(channel)
}
