package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"velora/internal/i18n"
	"velora/internal/store"
)

// ensureSID returns the anonymous session id, minting a cookie on first
// contact. Every session-scoped store keys off this value.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: "sid", Value: sid, Path: "/", HTTPOnly: true})
	}
	return sid
}

// resolveLang picks the response language: persisted choice first, then the
// Accept-Language header, then the default.
func resolveLang(c *fiber.Ctx, prefs *store.Prefs) string {
	return i18n.ResolveLang(prefs.Language(), c.Get("Accept-Language"))
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
