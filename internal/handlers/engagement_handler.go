package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kursus/internal/middleware"
	"kursus/internal/services"
)

// EngagementHandler handles HTTP requests for favorites, cart, reviews and
// comments.
type EngagementHandler struct {
	service  *services.EngagementService
	validate *validator.Validate
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(service *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the engagement routes. All of them require a token.
func (h *EngagementHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users/me")
	userRoutes.Post("/favorites/:courseId", h.HandleToggleFavorite)
	userRoutes.Get("/favorites", h.HandleListFavorites)
	userRoutes.Post("/cart/:courseId", h.HandleToggleCart)
	userRoutes.Get("/cart", h.HandleListCart)

	router.Post("/courses/:courseId/reviews", h.HandleAddReview)
	router.Get("/courses/:courseId/reviews", h.HandleListReviews)

	router.Post("/videos/:videoId/comments", h.HandleAddComment)
	router.Get("/videos/:videoId/comments", h.HandleListComments)
	router.Put("/comments/:commentId", h.HandleUpdateComment)
	router.Delete("/comments/:commentId", h.HandleDeleteComment)
}

// HandleToggleFavorite toggles the course in the caller's favorites.
func (h *EngagementHandler) HandleToggleFavorite(c *fiber.Ctx) error {
	user, err := h.service.ToggleFavorite(middleware.UserID(c), c.Params("courseId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleListFavorites resolves the caller's favorite courses.
func (h *EngagementHandler) HandleListFavorites(c *fiber.Ctx) error {
	courses, err := h.service.ListFavoriteCourses(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(courses)
}

// HandleToggleCart toggles the course in the caller's cart.
func (h *EngagementHandler) HandleToggleCart(c *fiber.Ctx) error {
	user, err := h.service.ToggleCart(middleware.UserID(c), c.Params("courseId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleListCart resolves the caller's cart courses.
func (h *EngagementHandler) HandleListCart(c *fiber.Ctx) error {
	courses, err := h.service.ListCartCourses(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(courses)
}

// ReviewRequest represents the request body for a review submission.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// HandleAddReview records or updates the caller's review of a course.
func (h *EngagementHandler) HandleAddReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	review, err := h.service.AddOrUpdateReview(middleware.UserID(c), c.Params("courseId"), req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleListReviews returns the reviews of a course, 404 when empty.
func (h *EngagementHandler) HandleListReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListReviews(c.Params("courseId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

// CommentRequest represents the request body for a comment.
type CommentRequest struct {
	Comment string `json:"comment" validate:"required,min=3,max=200"`
}

// HandleAddComment records a comment on a video.
func (h *EngagementHandler) HandleAddComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	comment, err := h.service.AddComment(middleware.UserID(c), c.Params("videoId"), req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleListComments returns the comments on a video, 404 when empty.
func (h *EngagementHandler) HandleListComments(c *fiber.Ctx) error {
	comments, err := h.service.ListComments(c.Params("videoId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// HandleUpdateComment edits the caller's own comment.
func (h *EngagementHandler) HandleUpdateComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	comment, err := h.service.UpdateComment(c.Params("commentId"), middleware.UserID(c), req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// HandleDeleteComment deletes the caller's own comment.
func (h *EngagementHandler) HandleDeleteComment(c *fiber.Ctx) error {
	if err := h.service.DeleteComment(c.Params("commentId"), middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
