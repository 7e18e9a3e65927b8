package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kursus/internal/middleware"
	"kursus/internal/models"
	"kursus/internal/services"
	"kursus/pkg/logger"
)

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/verify-email", h.HandleVerifyEmail)
	authRoutes.Post("/resend-verification", h.HandleResendVerification)
}

// RegisterProtectedRoutes registers the user routes that require a token.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleGetCurrentUser)
	userRoutes.Put("/me", h.HandleUpdateProfile)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Delete("/:id", middleware.SelfOrAdmin(), h.HandleDeleteAccount)
}

// HandleRegister handles new user registration. The account starts
// unverified and no session token is issued.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(user); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.authService.RegisterUser(c.Context(), &user); err != nil {
		logger.L().Warnf("error registering user: %v", err)
		return respondError(c, err)
	}

	sanitized := user.Sanitized()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully, check your email for the verification code",
		"user":    sanitized,
	})
}

// VerifyEmailRequest represents the request body for email verification.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// HandleVerifyEmail checks a verification code and issues the first session
// token on success.
func (h *AuthHandler) HandleVerifyEmail(c *fiber.Ctx) error {
	var req VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	token, user, err := h.authService.VerifyEmail(req.Email, req.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Email verified successfully",
		"token":   token,
		"user":    user,
	})
}

// ResendVerificationRequest represents the request body for a code resend.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleResendVerification rotates and resends the verification code.
func (h *AuthHandler) HandleResendVerification(c *fiber.Ctx) error {
	var req ResendVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.authService.ResendVerification(c.Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Verification code sent",
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a session token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	token, user, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		logger.L().Debugf("login failed for %s: %v", req.Email, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// HandleGetCurrentUser returns the caller's own sanitized record.
func (h *AuthHandler) HandleGetCurrentUser(c *fiber.Ctx) error {
	user, err := h.authService.GetUserByID(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleGetUserByID returns a user by ID.
func (h *AuthHandler) HandleGetUserByID(c *fiber.Ctx) error {
	user, err := h.authService.GetUserByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateProfile updates the caller's profile. A new avatar file
// replaces the avatar reference; without one the prior value is kept.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var fields services.ProfileUpdate
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

	user, err := h.authService.UpdateProfile(c.Context(), middleware.UserID(c), fields, avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// HandleDeleteAccount deletes the target account and everything it owns.
func (h *AuthHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	if err := h.authService.DeleteAccount(c.Params("id")); err != nil {
		logger.L().Warnf("error deleting account %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
