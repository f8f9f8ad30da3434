package handlers

import (
	"github.com/gofiber/fiber/v2"

	"velora/internal/i18n"
	applog "velora/internal/log"
	"velora/internal/services"
	"velora/internal/store"
	"velora/internal/validate"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
	Sessions *store.Manager
}

type checkoutRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Place records the order and returns the WhatsApp handoff URL with the
// pre-filled message.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid name")
	}
	phone, ok := validate.Phone(req.Phone)
	if !ok {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid phone")
	}

	prefs := h.Sessions.Prefs(sid)
	lang := resolveLang(c, prefs)
	cart := h.Sessions.Cart(sid)

	res, err := h.Checkout.Place(c.Context(), sid, cart, name, phone, lang)
	if err == services.ErrEmptyCart {
		return jsonError(c, fiber.StatusUnprocessableEntity, i18n.T(lang, "checkout.empty_cart", nil))
	}
	if err != nil {
		return err
	}

	applog.Audit(c, "order.placed", map[string]any{
		"order": res.Order.ID, "total": res.Order.Total, "lines": len(res.Order.Lines),
	})
	return c.JSON(res)
}
