package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"velora/internal/currency"
	"velora/internal/services"
	"velora/internal/store"
	"velora/internal/validate"
)

type CatalogHandler struct {
	Catalog  *services.CatalogService
	Sessions *store.Manager
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": cats})
}

func (h *CatalogHandler) SubCategories(c *fiber.Ctx) error {
	catID := c.Query("categoryId")
	subs, err := h.Catalog.SubCategories(c.Context(), catID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"subcategories": subs})
}

// displayCurrency resolves the session's chosen currency, defaulting to the
// canonical one. Prices stay canonical in the payload; the display block
// carries the converted figures.
func (h *CatalogHandler) displayCurrency(c *fiber.Ctx, sid string) string {
	code := h.Sessions.Prefs(sid).Currency()
	if !currency.Supported(code) {
		return currency.Canonical
	}
	return code
}

func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	sid := ensureSID(c)
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "12"))

	prods, err := h.Catalog.ListProducts(c.Context(), c.Query("categoryId"), c.Query("subCategoryId"), page, pageSize)
	if err != nil {
		return err
	}

	code := h.displayCurrency(c, sid)
	items := make([]fiber.Map, 0, len(prods))
	for _, p := range prods {
		items = append(items, fiber.Map{
			"product":      p,
			"displayPrice": currency.Format(currency.Convert(p.Price, code), code),
		})
	}
	return c.JSON(fiber.Map{"products": items, "currency": code, "page": page})
}

func (h *CatalogHandler) ProductBySlug(c *fiber.Ctx) error {
	sid := ensureSID(c)
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid slug")
	}
	detail, err := h.Catalog.ProductBySlug(c.Context(), slug)
	if err != nil {
		if err == services.ErrNotFound {
			return jsonError(c, fiber.StatusNotFound, "product not found")
		}
		return err
	}

	code := h.displayCurrency(c, sid)
	return c.JSON(fiber.Map{
		"product":      detail.Product,
		"reviews":      detail.Reviews,
		"displayPrice": currency.Format(currency.Convert(detail.Product.Price, code), code),
		"currency":     code,
	})
}
