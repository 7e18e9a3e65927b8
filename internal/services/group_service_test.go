package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kursus/internal/apperrors"
	"kursus/internal/models"
	"kursus/internal/services"
)

func threeMemberGroup() *models.Group {
	return &models.Group{
		ID:             "group-1",
		Title:          "Go Study Group",
		InvitationLink: "deadbeefdeadbeef",
		Members: models.MemberList{
			{UserID: "owner-1", Role: models.RoleOwner},
			{UserID: "subadmin-1", Role: models.RoleSubAdmin},
			{UserID: "member-1", Role: models.RoleMember},
		},
		UserID:    "owner-1",
		ChannelID: "channel-1",
	}
}

func TestGroupService_AddGroup(t *testing.T) {
	mockGroups := new(MockGroupRepository)
	mockChannels := new(MockChannelRepository)
	store := &fakeStore{}
	service := services.NewGroupService(mockGroups, mockChannels, store, nil)

	channel := &models.Channel{ID: "channel-1", UserID: "owner-1", Groups: models.StringList{}}
	fields := services.GroupFields{Title: "Go Study Group", Description: "Weekly sessions", Public: true}
	avatar := &services.Upload{Filename: "group.png", ContentType: "image/png", Data: []byte("img")}

	mockChannels.On("GetByID", "channel-1").Return(channel, nil).Once()
	mockGroups.On("Create", mock.AnythingOfType("*models.Group")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Group).ID = "group-1"
	}).Return(nil).Once()
	mockChannels.On("Update", mock.AnythingOfType("*models.Channel")).Return(nil).Once()

	group, err := service.AddGroup(context.Background(), "channel-1", "owner-1", fields, avatar)
	assert.NoError(t, err)

	// The creator is the sole initial member and holds the owner role.
	assert.Len(t, group.Members, 1)
	assert.Equal(t, models.RoleOwner, group.Members.RoleOf("owner-1"))
	assert.NotEmpty(t, group.InvitationLink)
	assert.True(t, channel.Groups.Contains("group-1"))
	mockChannels.AssertExpectations(t)
	mockGroups.AssertExpectations(t)

	// Test not the channel owner
	mockChannels.On("GetByID", "channel-1").Return(channel, nil).Once()
	_, err = service.AddGroup(context.Background(), "channel-1", "someone-else", fields, avatar)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockChannels.AssertExpectations(t)
}

func TestGroupService_Join(t *testing.T) {
	mockGroups := new(MockGroupRepository)
	service := services.NewGroupService(mockGroups, nil, nil, nil)

	// Test join by group ID
	group := threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	mockGroups.On("Update", mock.AnythingOfType("*models.Group")).Return(nil).Once()

	joined, err := service.JoinByGroupID("group-1", "newuser-1")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleMember, joined.Members.RoleOf("newuser-1"))
	mockGroups.AssertExpectations(t)

	// Test join by invitation link
	group = threeMemberGroup()
	mockGroups.On("GetByInvitationLink", "deadbeefdeadbeef").Return(group, nil).Once()
	mockGroups.On("Update", mock.AnythingOfType("*models.Group")).Return(nil).Once()

	joined, err = service.JoinByInvitationLink("deadbeefdeadbeef", "newuser-2")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleMember, joined.Members.RoleOf("newuser-2"))
	mockGroups.AssertExpectations(t)

	// Test joining twice
	group = threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	_, err = service.JoinByGroupID("group-1", "member-1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
	mockGroups.AssertExpectations(t)
}

func TestGroupService_Exit(t *testing.T) {
	mockGroups := new(MockGroupRepository)
	service := services.NewGroupService(mockGroups, nil, nil, nil)

	// Test plain member exit
	group := threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	mockGroups.On("Update", mock.AnythingOfType("*models.Group")).Return(nil).Once()

	err := service.Exit("group-1", "member-1")
	assert.NoError(t, err)
	assert.Equal(t, models.MemberRole(""), group.Members.RoleOf("member-1"))
	mockGroups.AssertExpectations(t)

	// Test the owner can never exit
	group = threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	err = service.Exit("group-1", "owner-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockGroups.AssertExpectations(t)

	// Test non-member exit
	group = threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	err = service.Exit("group-1", "stranger-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockGroups.AssertExpectations(t)
}

func TestGroupService_RemoveMember(t *testing.T) {
	mockGroups := new(MockGroupRepository)
	service := services.NewGroupService(mockGroups, nil, nil, nil)

	// Test sub-admin removes a member
	group := threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	mockGroups.On("Update", mock.AnythingOfType("*models.Group")).Return(nil).Once()

	err := service.RemoveMember("group-1", "subadmin-1", "member-1")
	assert.NoError(t, err)
	assert.Equal(t, models.MemberRole(""), group.Members.RoleOf("member-1"))
	mockGroups.AssertExpectations(t)

	// Test a plain member may not remove
	group = threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	err = service.RemoveMember("group-1", "member-1", "subadmin-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockGroups.AssertExpectations(t)

	// Test the owner can never be removed
	group = threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	err = service.RemoveMember("group-1", "subadmin-1", "owner-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockGroups.AssertExpectations(t)
}

func TestGroupService_PromoteSubAdmin(t *testing.T) {
	mockGroups := new(MockGroupRepository)
	service := services.NewGroupService(mockGroups, nil, nil, nil)

	// Test owner promotes a member
	group := threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	mockGroups.On("Update", mock.AnythingOfType("*models.Group")).Return(nil).Once()

	err := service.PromoteSubAdmin("group-1", "owner-1", "member-1")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleSubAdmin, group.Members.RoleOf("member-1"))
	mockGroups.AssertExpectations(t)

	// Test promoting an existing sub-admin
	group = threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	err = service.PromoteSubAdmin("group-1", "owner-1", "subadmin-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockGroups.AssertExpectations(t)

	// Test a plain member may not promote
	group = threeMemberGroup()
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	err = service.PromoteSubAdmin("group-1", "member-1", "member-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockGroups.AssertExpectations(t)
}

func TestGroupService_DeleteGroup(t *testing.T) {
	mockGroups := new(MockGroupRepository)
	mockChannels := new(MockChannelRepository)
	service := services.NewGroupService(mockGroups, mockChannels, nil, nil)

	group := threeMemberGroup()
	channel := &models.Channel{ID: "channel-1", UserID: "owner-1", Groups: models.StringList{"group-1"}}

	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	mockChannels.On("GetByID", "channel-1").Return(channel, nil).Once()
	mockGroups.On("Delete", "group-1").Return(nil).Once()
	mockChannels.On("Update", mock.AnythingOfType("*models.Channel")).Return(nil).Once()

	err := service.DeleteGroup("channel-1", "group-1", "owner-1")
	assert.NoError(t, err)
	assert.False(t, channel.Groups.Contains("group-1"))
	mockGroups.AssertExpectations(t)
	mockChannels.AssertExpectations(t)

	// Test only the group owner may delete
	group = threeMemberGroup()
	channel = &models.Channel{ID: "channel-1", UserID: "owner-1", Groups: models.StringList{"group-1"}}
	mockGroups.On("GetByID", "group-1").Return(group, nil).Once()
	mockChannels.On("GetByID", "channel-1").Return(channel, nil).Once()
	err = service.DeleteGroup("channel-1", "group-1", "subadmin-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockGroups.AssertExpectations(t)
	mockChannels.AssertExpectations(t)
}
