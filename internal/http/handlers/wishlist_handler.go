package handlers

import (
	"github.com/gofiber/fiber/v2"

	"velora/internal/i18n"
	"velora/internal/services"
	"velora/internal/store"
	"velora/internal/validate"
)

type WishlistHandler struct {
	Wish     *services.WishlistService
	Sessions *store.Manager
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
}

// Toggle flips a product in and out of the wishlist and reports the new state.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req wishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}

	wl := h.Sessions.Wishlist(sid)
	liked, err := h.Wish.Toggle(wl, req.ProductID)
	if err != nil {
		return err
	}

	lang := resolveLang(c, h.Sessions.Prefs(sid))
	key := "wishlist.removed"
	if liked {
		key = "wishlist.added"
	}
	return c.JSON(fiber.Map{
		"liked":   liked,
		"count":   wl.Count(),
		"message": i18n.T(lang, key, nil),
	})
}

func (h *WishlistHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	wl := h.Sessions.Wishlist(sid)
	prods, err := h.Wish.Products(c.Context(), wl)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": prods, "count": wl.Count()})
}
