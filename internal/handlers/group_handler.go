package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kursus/internal/middleware"
	"kursus/internal/services"
)

// GroupHandler handles HTTP requests for groups and their membership.
type GroupHandler struct {
	service  *services.GroupService
	validate *validator.Validate
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(service *services.GroupService) *GroupHandler {
	return &GroupHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the group routes. All of them require a token.
func (h *GroupHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/channels/:channelId/groups", h.HandleAddGroup)
	router.Delete("/channels/:channelId/groups/:groupId", h.HandleDeleteGroup)

	groupRoutes := router.Group("/groups")
	groupRoutes.Get("/:groupId", h.HandleGetGroup)
	groupRoutes.Post("/:groupId/join", h.HandleJoinByGroupID)
	groupRoutes.Post("/join/:invitationLink", h.HandleJoinByLink)
	groupRoutes.Post("/:groupId/exit", h.HandleExit)
	groupRoutes.Delete("/:groupId/members/:userId", h.HandleRemoveMember)
	groupRoutes.Post("/:groupId/subadmins/:userId", h.HandlePromoteSubAdmin)
}

// HandleAddGroup creates a group under the caller's channel. The avatar file
// is mandatory.
func (h *GroupHandler) HandleAddGroup(c *fiber.Ctx) error {
	var fields services.GroupFields
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(fields); err != nil {
		return respondValidationErrors(c, err)
	}

	avatar, err := formUpload(c, "avatar")
	if err != nil {
		return respondError(c, err)
	}

	group, err := h.service.AddGroup(c.Context(), c.Params("channelId"), middleware.UserID(c), fields, avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// HandleGetGroup returns a group by its ID.
func (h *GroupHandler) HandleGetGroup(c *fiber.Ctx) error {
	group, err := h.service.GetGroup(c.Params("groupId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(group)
}

// HandleJoinByGroupID joins the caller to the group.
func (h *GroupHandler) HandleJoinByGroupID(c *fiber.Ctx) error {
	group, err := h.service.JoinByGroupID(c.Params("groupId"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(group)
}

// HandleJoinByLink joins the caller via an invitation link.
func (h *GroupHandler) HandleJoinByLink(c *fiber.Ctx) error {
	group, err := h.service.JoinByInvitationLink(c.Params("invitationLink"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(group)
}

// HandleExit removes the caller from the group. The owner cannot exit.
func (h *GroupHandler) HandleExit(c *fiber.Ctx) error {
	if err := h.service.Exit(c.Params("groupId"), middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "You have left the group",
	})
}

// HandleRemoveMember removes a member; owner or sub-admin only.
func (h *GroupHandler) HandleRemoveMember(c *fiber.Ctx) error {
	if err := h.service.RemoveMember(c.Params("groupId"), middleware.UserID(c), c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "The user has been removed from the group",
	})
}

// HandlePromoteSubAdmin raises a member to sub-admin; owner or sub-admin only.
func (h *GroupHandler) HandlePromoteSubAdmin(c *fiber.Ctx) error {
	if err := h.service.PromoteSubAdmin(c.Params("groupId"), middleware.UserID(c), c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "The user has been added to the admin list",
	})
}

// HandleDeleteGroup deletes the group; group owner only.
func (h *GroupHandler) HandleDeleteGroup(c *fiber.Ctx) error {
	if err := h.service.DeleteGroup(c.Params("channelId"), c.Params("groupId"), middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Group deleted successfully",
	})
}
