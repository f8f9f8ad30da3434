package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "velora/internal/log"
	"velora/internal/services"
)

// RequireAdmin gates the admin surface. Denials are logged as security events.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return jsonError(c, fiber.StatusUnauthorized, "not signed in")
		}
		u, err := auth.CurrentUser(c.Context(), sid)
		if err != nil {
			return jsonError(c, fiber.StatusUnauthorized, "not signed in")
		}
		if u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid, "user": u.ID})
			return jsonError(c, fiber.StatusForbidden, "access denied")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
