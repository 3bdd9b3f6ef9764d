package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// UserIDHeader carries the caller's identity, set by the upstream proxy.
const UserIDHeader = "X-User-Id"

// RequireUser ensures the request carries a user id header and stores it
// in locals for handlers. The header is trusted as-is; authentication is
// handled upstream.
func RequireUser(c fiber.Ctx) error {
	userID := strings.TrimSpace(c.Get(UserIDHeader))
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "missing " + UserIDHeader + " header",
		})
	}

	c.Locals("userID", userID)
	return c.Next()
}
