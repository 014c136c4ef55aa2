package handlers

import (
	"errors"

	"github.com/arzan03/newsroom/internal/models"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// handleServiceError writes the JSON error response for err. Infrastructure
// failures are logged and reported with a generic message.
func handleServiceError(c *fiber.Ctx, err error) error {
	status, msg := fiber.StatusInternalServerError, "Internal server error"

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		status, msg = fiber.StatusBadRequest, verr.Message
	case errors.Is(err, models.ErrEmailExists):
		status, msg = fiber.StatusBadRequest, "User already exists"
	case errors.Is(err, models.ErrSlugExists):
		status, msg = fiber.StatusBadRequest, "An article with this slug already exists"
	case errors.Is(err, models.ErrInvalidResetToken):
		status, msg = fiber.StatusBadRequest, "Password reset token is invalid or has expired"
	case errors.Is(err, models.ErrInvalidCredentials):
		status, msg = fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, models.ErrUserSuspended):
		status, msg = fiber.StatusForbidden, "Account suspended"
	case errors.Is(err, models.ErrForbidden):
		status, msg = fiber.StatusForbidden, "Access denied"
	case errors.Is(err, models.ErrNotFound):
		status, msg = fiber.StatusNotFound, "Not found"
	case errors.Is(err, models.ErrStorageUnavailable):
		status, msg = fiber.StatusServiceUnavailable, "File storage is not configured"
	default:
		zap.L().Error("Request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
}

// ErrorHandler is the app-wide fallback for errors returned by handlers and
// middleware.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return handleServiceError(c, err)
}
