package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kursus/internal/middleware"
	"kursus/internal/services"
)

// VideoHandler handles HTTP requests for course videos.
type VideoHandler struct {
	service  *services.VideoService
	validate *validator.Validate
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(service *services.VideoService) *VideoHandler {
	return &VideoHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the video routes. All of them require a token.
func (h *VideoHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/videos", h.HandleListOwnVideos)
	router.Get("/videos/:videoId", h.HandleGetVideoByID)
	router.Put("/videos/:videoId", h.HandleUpdateVideo)
	router.Delete("/videos/:videoId", h.HandleDeleteVideo)
	router.Get("/courses/:courseId/videos", h.HandleGetVideoCourse)
	router.Post("/courses/:courseId/videos", h.HandleAddVideo)
}

// HandleListOwnVideos returns every video the caller owns.
func (h *VideoHandler) HandleListOwnVideos(c *fiber.Ctx) error {
	videos, err := h.service.ListVideosByUser(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(videos)
}

// HandleGetVideoByID returns a video; owner only.
func (h *VideoHandler) HandleGetVideoByID(c *fiber.Ctx) error {
	video, err := h.service.GetVideoByID(c.Params("videoId"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

// HandleGetVideoCourse returns a course with its videos populated plus the
// caller's channel info, regardless of who owns the course.
func (h *VideoHandler) HandleGetVideoCourse(c *fiber.Ctx) error {
	result, err := h.service.GetVideoCourse(c.Params("courseId"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// videoCreate is the request shape for adding a video.
type videoCreate struct {
	Title       string `json:"title" form:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" form:"description" validate:"omitempty,min=3,max=100"`
}

// HandleAddVideo adds a video to a course the caller owns. The video file is
// mandatory, the thumbnail optional.
func (h *VideoHandler) HandleAddVideo(c *fiber.Ctx) error {
	var req videoCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	video, err := formUpload(c, "video")
	if err != nil {
		return respondError(c, err)
	}
	thumbnail, err := formUpload(c, "thumbnail")
	if err != nil {
		return respondError(c, err)
	}

	fields := services.VideoFields{Title: req.Title, Description: req.Description}
	created, err := h.service.AddVideo(c.Context(), c.Params("courseId"), middleware.UserID(c), fields, video, thumbnail)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateVideo updates metadata and optionally replaces the media files.
func (h *VideoHandler) HandleUpdateVideo(c *fiber.Ctx) error {
	var fields services.VideoFields
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(fields); err != nil {
		return respondValidationErrors(c, err)
	}

	video, err := formUpload(c, "video")
	if err != nil {
		return respondError(c, err)
	}
	thumbnail, err := formUpload(c, "thumbnail")
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.service.UpdateVideo(c.Context(), c.Params("videoId"), middleware.UserID(c), fields, video, thumbnail)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Video updated successfully",
		"video":   updated,
	})
}

// HandleDeleteVideo removes the video record.
func (h *VideoHandler) HandleDeleteVideo(c *fiber.Ctx) error {
	if err := h.service.DeleteVideo(c.Params("videoId"), middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Video deleted successfully",
	})
}
