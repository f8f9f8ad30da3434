package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "velora/internal/log"
	"velora/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}

	u, err := h.Auth.Login(c.Context(), sid, req.Email, req.Password)
	if err != nil {
		applog.Security(c, "login.fail", map[string]any{"email": req.Email})
		return jsonError(c, fiber.StatusUnauthorized, services.ErrBadCreds.Error())
	}
	applog.Audit(c, "login.ok", map[string]any{"user": u.ID})
	return c.JSON(fiber.Map{"user": u})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Auth.Logout(c.Context(), sid); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, err := h.Auth.CurrentUser(c.Context(), sid)
	if err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "not signed in")
	}
	return c.JSON(fiber.Map{"user": u})
}
