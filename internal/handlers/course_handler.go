package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kursus/internal/middleware"
	"kursus/internal/services"
)

// CourseHandler handles HTTP requests for the course catalog.
type CourseHandler struct {
	service  *services.CourseService
	validate *validator.Validate
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public read routes for courses.
func (h *CourseHandler) RegisterRoutes(router fiber.Router) {
	courseRoutes := router.Group("/courses")
	courseRoutes.Get("/", h.HandleListCourses)
	courseRoutes.Get("/:courseId", h.HandleGetCourseByID)
}

// RegisterProtectedRoutes registers the course mutation routes.
func (h *CourseHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/users/me/courses", h.HandleListOwnCourses)
	router.Post("/channels/:channelId/courses", h.HandleAddCourse)
	router.Put("/courses/:courseId", h.HandleUpdateCourse)
	router.Delete("/courses/:courseId", h.HandleDeleteCourse)
}

// HandleListCourses returns the whole catalog, 404 when empty.
func (h *CourseHandler) HandleListCourses(c *fiber.Ctx) error {
	courses, err := h.service.ListCourses()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(courses)
}

// HandleGetCourseByID returns a single course.
func (h *CourseHandler) HandleGetCourseByID(c *fiber.Ctx) error {
	course, err := h.service.GetCourseByID(c.Params("courseId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}

// HandleListOwnCourses returns the caller's courses, 404 when empty.
func (h *CourseHandler) HandleListOwnCourses(c *fiber.Ctx) error {
	courses, err := h.service.ListCoursesByUser(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(courses)
}

// courseCreate is the request shape for creating a course; title, description
// and price are required on create, unlike on update.
type courseCreate struct {
	Title       string   `json:"title" form:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" form:"description" validate:"required,min=3,max=5000"`
	Price       *float64 `json:"price" form:"price" validate:"required,gte=0"`
}

// HandleAddCourse creates a course under the caller's channel. The avatar
// file is mandatory.
func (h *CourseHandler) HandleAddCourse(c *fiber.Ctx) error {
	var req courseCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	avatar, err := formUpload(c, "avatar")
	if err != nil {
		return respondError(c, err)
	}

	fields := services.CourseFields{Title: req.Title, Description: req.Description, Price: req.Price}
	course, err := h.service.AddCourse(c.Context(), c.Params("channelId"), middleware.UserID(c), fields, avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

// HandleUpdateCourse updates a course the caller owns.
func (h *CourseHandler) HandleUpdateCourse(c *fiber.Ctx) error {
	var fields services.CourseFields
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

	course, err := h.service.UpdateCourse(c.Context(), c.Params("courseId"), middleware.UserID(c), fields, avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}

// HandleDeleteCourse deletes a course the caller owns.
func (h *CourseHandler) HandleDeleteCourse(c *fiber.Ctx) error {
	if err := h.service.DeleteCourse(c.Params("courseId"), middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Course deleted successfully",
	})
}
