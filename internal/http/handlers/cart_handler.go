package handlers

import (
	"github.com/gofiber/fiber/v2"

	"velora/internal/currency"
	"velora/internal/domain"
	"velora/internal/i18n"
	"velora/internal/services"
	"velora/internal/store"
	"velora/internal/validate"
)

type CartHandler struct {
	Cart     *services.CartService
	Sessions *store.Manager
}

type addCartRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req addCartRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}

	cart := h.Sessions.Cart(sid)
	item, err := h.Cart.Add(c.Context(), cart, req.ProductID, req.Size, req.Color, req.Quantity)
	switch err {
	case nil:
	case services.ErrNotFound:
		return jsonError(c, fiber.StatusNotFound, "product not found")
	case services.ErrNoVariant:
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case services.ErrOutOfStock:
		return jsonError(c, fiber.StatusConflict, err.Error())
	default:
		return err
	}

	lang := resolveLang(c, h.Sessions.Prefs(sid))
	return c.JSON(fiber.Map{
		"message": i18n.T(lang, "cart.added", map[string]any{"name": item.Name}),
		"count":   cart.Count(),
	})
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cart := h.Sessions.Cart(sid)
	prefs := h.Sessions.Prefs(sid)

	code := prefs.Currency()
	if !currency.Supported(code) {
		code = currency.Canonical
	}
	items := cart.Items()
	lines := make([]fiber.Map, 0, len(items))
	for _, it := range items {
		lines = append(lines, fiber.Map{
			"item":         it,
			"displayPrice": currency.Format(currency.Convert(it.Price, code), code),
			"displayLine":  currency.Format(currency.Convert(it.Price*float64(it.Quantity), code), code),
		})
	}
	return c.JSON(fiber.Map{
		"items":        lines,
		"count":        cart.Count(),
		"total":        cart.Total(),
		"displayTotal": currency.Format(currency.Convert(cart.Total(), code), code),
		"currency":     code,
	})
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	sid := ensureSID(c)
	variantID := c.Params("variantId")
	var req updateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	cart := h.Sessions.Cart(sid)
	if err := cart.SetQuantity(variantID, req.Quantity); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"count": cart.Count(), "total": cart.Total()})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cart := h.Sessions.Cart(sid)
	if err := cart.Remove(c.Params("variantId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"count": cart.Count(), "total": cart.Total()})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Sessions.Cart(sid).Clear(); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"count": 0, "items": []domain.CartItem{}})
}
