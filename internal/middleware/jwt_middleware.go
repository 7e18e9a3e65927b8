package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kursus/internal/services"
	"kursus/pkg/logger"
)

// AuthRequired is a Fiber middleware that checks for a valid bearer token and
// stores the identity claims in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access denied. No token provided.",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			logger.L().Debugf("token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		userID, _ := claims["id"].(string)
		name, _ := claims["name"].(string)
		isAdmin, _ := claims["admin"].(bool)

		c.Locals("user_id", userID)
		c.Locals("name", name)
		c.Locals("is_admin", isAdmin)

		return c.Next()
	}
}

// SelfOrAdmin only lets a request through when the :id route parameter is the
// caller's own user ID or the caller is an admin. Must run after AuthRequired.
func SelfOrAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		isAdmin, _ := c.Locals("is_admin").(bool)
		if c.Params("id") == userID || isAdmin {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "you are not allowed",
		})
	}
}

// UserID pulls the authenticated caller's ID out of the request context.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
