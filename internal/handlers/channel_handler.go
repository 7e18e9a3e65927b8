package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kursus/internal/middleware"
	"kursus/internal/services"
)

// ChannelHandler handles HTTP requests for channels.
type ChannelHandler struct {
	service  *services.ChannelService
	validate *validator.Validate
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(service *services.ChannelService) *ChannelHandler {
	return &ChannelHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the channel routes. All of them require a token.
func (h *ChannelHandler) RegisterRoutes(router fiber.Router) {
	channelRoutes := router.Group("/channels")
	channelRoutes.Get("/", h.HandleListChannels)
	channelRoutes.Get("/me", h.HandleGetOwnedChannel)
	channelRoutes.Post("/", h.HandleCreateChannel)
	channelRoutes.Put("/:channelId", h.HandleUpdateChannel)
	channelRoutes.Delete("/:channelId", h.HandleDeleteChannel)
}

// HandleListChannels returns every channel.
func (h *ChannelHandler) HandleListChannels(c *fiber.Ctx) error {
	channels, err := h.service.ListChannels()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(channels)
}

// HandleGetOwnedChannel returns the caller's own channel.
func (h *ChannelHandler) HandleGetOwnedChannel(c *fiber.Ctx) error {
	channel, err := h.service.GetOwnedChannel(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(channel)
}

// HandleCreateChannel creates the caller's channel. The avatar file is
// mandatory, the background optional.
func (h *ChannelHandler) HandleCreateChannel(c *fiber.Ctx) error {
	var fields services.ChannelFields
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
	background, err := formUpload(c, "background")
	if err != nil {
		return respondError(c, err)
	}

	channel, err := h.service.CreateChannel(c.Context(), middleware.UserID(c), fields, avatar, background)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(channel)
}

// HandleUpdateChannel updates the caller's channel.
func (h *ChannelHandler) HandleUpdateChannel(c *fiber.Ctx) error {
	var fields services.ChannelFields
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
	background, err := formUpload(c, "background")
	if err != nil {
		return respondError(c, err)
	}

	channel, err := h.service.UpdateChannel(c.Context(), c.Params("channelId"), middleware.UserID(c), fields, avatar, background)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(channel)
}

// HandleDeleteChannel deletes the channel and its owner's courses and videos.
func (h *ChannelHandler) HandleDeleteChannel(c *fiber.Ctx) error {
	if err := h.service.DeleteChannel(c.Params("channelId"), middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Channel deleted successfully",
	})
}
