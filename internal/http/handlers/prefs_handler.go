package handlers

import (
	"github.com/gofiber/fiber/v2"

	"velora/internal/currency"
	"velora/internal/i18n"
	"velora/internal/store"
	"velora/internal/validate"
)

type PrefsHandler struct {
	Sessions *store.Manager
}

func (h *PrefsHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	prefs := h.Sessions.Prefs(sid)

	code := prefs.Currency()
	if !currency.Supported(code) {
		code = currency.Canonical
	}
	return c.JSON(fiber.Map{
		"language": resolveLang(c, prefs),
		"currency": code,
	})
}

type prefsRequest struct {
	Language string `json:"language"`
	Currency string `json:"currency"`
}

// Update persists language and/or currency; either field may be omitted.
func (h *PrefsHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req prefsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}

	prefs := h.Sessions.Prefs(sid)
	if req.Language != "" {
		lang, ok := validate.Lang(req.Language)
		if !ok {
			return jsonError(c, fiber.StatusUnprocessableEntity, "unsupported language")
		}
		if err := prefs.SetLanguage(lang); err != nil {
			return err
		}
	}
	if req.Currency != "" {
		code, ok := validate.Currency(req.Currency)
		if !ok {
			return jsonError(c, fiber.StatusUnprocessableEntity, "unsupported currency")
		}
		if err := prefs.SetCurrency(code); err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{
		"language": i18n.ResolveLang(prefs.Language(), c.Get("Accept-Language")),
		"currency": prefs.Currency(),
	})
}
