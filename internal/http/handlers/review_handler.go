package handlers

import (
	"github.com/gofiber/fiber/v2"

	"velora/internal/i18n"
	"velora/internal/services"
	"velora/internal/validate"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

type reviewRequest struct {
	ProductID string `json:"productId"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// Submit queues a review for moderation. It will not appear on the product
// page until approved.
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}
	author, ok := validate.Name(req.Author)
	if !ok {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid author name")
	}

	rev, err := h.Reviews.Submit(c.Context(), req.ProductID, author, req.Rating, req.Title, req.Comment)
	if err == services.ErrBadRating {
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err == services.ErrNotFound {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	if err != nil {
		return err
	}

	lang := i18n.ResolveLang("", c.Get("Accept-Language"))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"review":  rev,
		"message": i18n.T(lang, "review.submitted", nil),
	})
}
