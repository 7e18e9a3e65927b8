package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors for the operation boundary. Services wrap these with
// fmt.Errorf("...: %w", Err*) and handlers map them to a status with
// StatusCode via errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("you are not allowed")
	ErrUnauthorized = errors.New("access denied, no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrConflict     = errors.New("conflict")
	ErrDependency   = errors.New("dependency failure")

	// Credential lifecycle. Login deliberately reports the same error for an
	// unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("error in email or password")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrCodeExpired        = errors.New("verification code expired")

	// Membership.
	ErrAlreadyMember = errors.New("already a member of this group")
)

// StatusCode maps an error to the HTTP status its operation boundary responds with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrInvalidToken):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyMember):
		return fiber.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrAlreadyVerified), errors.Is(err, ErrInvalidCode), errors.Is(err, ErrCodeExpired):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrDependency):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
