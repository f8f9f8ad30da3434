package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"velora/internal/ai"
	"velora/internal/domain"
	"velora/internal/i18n"
	applog "velora/internal/log"
	"velora/internal/store"
)

type settingsSource interface {
	Get(ctx context.Context, defaults domain.StoreSettings) (domain.StoreSettings, error)
}

type AIHandler struct {
	Flows    *ai.Flows
	Sessions *store.Manager
	Settings settingsSource
	Defaults domain.StoreSettings
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h *AIHandler) Search(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}

	lang := resolveLang(c, h.Sessions.Prefs(sid))
	results, err := h.Flows.Search(c.Context(), req.Query, lang)
	if err != nil {
		applog.Error(c, "ai.search", err, nil)
		return jsonError(c, fiber.StatusBadGateway, "search is unavailable right now")
	}

	resp := fiber.Map{"results": results}
	if len(results) == 0 && strings.TrimSpace(req.Query) != "" {
		resp["message"] = i18n.T(lang, "search.no_results", map[string]any{"query": req.Query})
	}
	return c.JSON(resp)
}

// Suggest proposes complementary products for the session's current cart.
func (h *AIHandler) Suggest(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cart := h.Sessions.Cart(sid)

	names := []string{}
	for _, it := range cart.Items() {
		names = append(names, it.Name)
	}
	results, err := h.Flows.Suggest(c.Context(), names)
	if err != nil {
		applog.Error(c, "ai.suggest", err, nil)
		return jsonError(c, fiber.StatusBadGateway, "suggestions are unavailable right now")
	}
	return c.JSON(fiber.Map{"results": results})
}

// dailyCap reads the admin-configured cap, falling back to defaults when the
// settings read fails.
func (h *AIHandler) dailyCap(ctx context.Context) int {
	s, err := h.Settings.Get(ctx, h.Defaults)
	if err != nil || s.TryOnDailyCap <= 0 {
		return h.Defaults.TryOnDailyCap
	}
	return s.TryOnDailyCap
}

type tryOnRequest struct {
	PersonImage  string `json:"personImage"`
	ProductImage string `json:"productImage"`
}

// TryOn checks the daily cap before the generation call so a capped session
// never costs a service request. Only a successful generation spends a use:
// input is validated before the counter moves, and a failed service call
// refunds the use it consumed.
func (h *AIHandler) TryOn(c *fiber.Ctx) error {
	sid := ensureSID(c)
	lang := resolveLang(c, h.Sessions.Prefs(sid))

	var req tryOnRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	in := ai.TryOnInput{
		PersonImage:  req.PersonImage,
		ProductImage: req.ProductImage,
	}
	if err := in.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	limit := h.dailyCap(c.Context())
	usage := h.Sessions.Usage(sid)
	now := time.Now()

	allowed, err := usage.Allow(now, limit)
	if err != nil {
		return err
	}
	if !allowed {
		applog.Info(c, "tryon.cap", map[string]any{"cap": limit})
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":     i18n.T(lang, "tryon.cap_reached", map[string]any{"cap": limit}),
			"remaining": 0,
		})
	}

	img, err := h.Flows.TryOn(c.Context(), in)
	if err != nil {
		if rerr := usage.Refund(now); rerr != nil {
			applog.Error(c, "tryon.refund", rerr, nil)
		}
		if errors.Is(err, ai.ErrInvalidInput) {
			return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		applog.Error(c, "ai.tryon", err, nil)
		return jsonError(c, fiber.StatusBadGateway, "try-on is unavailable right now")
	}

	return c.JSON(fiber.Map{
		"image":     img,
		"remaining": usage.Remaining(now, limit),
	})
}

// TryOnRemaining lets the UI show the counter without spending a use.
func (h *AIHandler) TryOnRemaining(c *fiber.Ctx) error {
	sid := ensureSID(c)
	limit := h.dailyCap(c.Context())
	return c.JSON(fiber.Map{
		"remaining": h.Sessions.Usage(sid).Remaining(time.Now(), limit),
		"cap":       limit,
	})
}
