package middleware

import (
	"github.com/arzan03/newsroom/internal/models"
	"github.com/gofiber/fiber/v2"
)

// RequireRole lets the request through only when the authenticated user holds
// one of roles. It must run after AuthMiddleware.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token"})
		}
		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}
}
