package middleware

import (
	"strings"

	"github.com/arzan03/newsroom/internal/auth"
	"github.com/arzan03/newsroom/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// UserKey is the Locals key holding the verified *auth.Identity.
const UserKey = "user"

// AuthMiddleware validates the bearer token and exposes the caller's identity
// to later handlers. It does not check roles.
func AuthMiddleware(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token"})
		}

		// Expect "Bearer <token>"
		parts := strings.Split(header, " ")
		if len(parts) < 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			metrics.TokenVerificationsTotal.WithLabelValues("malformed").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token is malformed"})
		}

		identity, err := tokens.Verify(parts[1])
		if err != nil {
			metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token is not valid"})
		}

		metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
		c.Locals(UserKey, identity)
		return c.Next()
	}
}

// CurrentUser returns the identity stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (*auth.Identity, bool) {
	identity, ok := c.Locals(UserKey).(*auth.Identity)
	return identity, ok && identity != nil
}
