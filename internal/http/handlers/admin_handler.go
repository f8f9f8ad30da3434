package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"velora/internal/domain"
	applog "velora/internal/log"
	"velora/internal/repos"
	"velora/internal/services"
	"velora/internal/validate"
)

// AdminHandler is the CMS surface: product, category, order, review, user and
// settings management. Every route behind it runs under RequireAdmin.
type AdminHandler struct {
	Products   *repos.ProductRepo
	Categories *repos.CategoryRepo
	Orders     *repos.OrderRepo
	Reviews    *services.ReviewService
	Stock      *services.StockService
	Auth       *services.AuthService
	Settings   *repos.SettingsRepo
	Defaults   domain.StoreSettings
}

func notFoundOr(c *fiber.Ctx, err error) error {
	if err == mongo.ErrNoDocuments {
		return jsonError(c, fiber.StatusNotFound, "not found")
	}
	return err
}

// ---------- Products ----------

func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))
	prods, err := h.Products.List(c.Context(), repos.ProductFilter{
		CategoryID: c.Query("categoryId"),
		Status:     c.Query("status"), // admin sees drafts and archived too
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": prods})
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if _, ok := validate.Slug(p.Slug); !ok {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid slug")
	}
	if p.Name == "" || p.Price < 0 {
		return jsonError(c, fiber.StatusUnprocessableEntity, "name and non-negative price are required")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.ProductDraft
	}
	if err := h.Products.Create(c.Context(), p); err != nil {
		return err
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product": p.ID, "slug": p.Slug})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": p})
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	p.ID = id
	if _, ok := validate.Slug(p.Slug); !ok {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid slug")
	}
	if err := h.Products.Update(c.Context(), p); err != nil {
		return notFoundOr(c, err)
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product": id})
	return c.JSON(fiber.Map{"product": p})
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetProductStatus moves a product between DRAFT, PUBLISHED and ARCHIVED.
// Archiving replaces deletion; carts holding snapshots keep working.
func (h *AdminHandler) SetProductStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	switch req.Status {
	case domain.ProductDraft, domain.ProductPublished, domain.ProductArchived:
	default:
		return jsonError(c, fiber.StatusUnprocessableEntity, "unknown status")
	}
	if err := h.Products.SetStatus(c.Context(), id, req.Status); err != nil {
		return notFoundOr(c, err)
	}
	applog.Audit(c, "admin.product.status", map[string]any{"product": id, "status": req.Status})
	return c.JSON(fiber.Map{"ok": true})
}

type stockRequest struct {
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// SetStock schedules a debounced stock write for one variant.
func (h *AdminHandler) SetStock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req stockRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.Stock.Set(id, req.Size, req.Color, req.Quantity); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"scheduled": true})
}

// ---------- Categories ----------

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var cat domain.Category
	if err := c.BodyParser(&cat); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if cat.Name == "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "name is required")
	}
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	if err := h.Categories.Create(c.Context(), cat); err != nil {
		return err
	}
	applog.Audit(c, "admin.category.create", map[string]any{"category": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": cat})
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var cat domain.Category
	if err := c.BodyParser(&cat); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	cat.ID = id
	if err := h.Categories.Update(c.Context(), cat); err != nil {
		return notFoundOr(c, err)
	}
	return c.JSON(fiber.Map{"category": cat})
}

func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Categories.Delete(c.Context(), id); err != nil {
		return notFoundOr(c, err)
	}
	applog.Audit(c, "admin.category.delete", map[string]any{"category": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AdminHandler) CreateSubCategory(c *fiber.Ctx) error {
	var sub domain.SubCategory
	if err := c.BodyParser(&sub); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if sub.Name == "" || sub.CategoryID == "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "name and categoryId are required")
	}
	if _, err := h.Categories.ByID(c.Context(), sub.CategoryID); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "parent category does not exist")
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if err := h.Categories.CreateSub(c.Context(), sub); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"subcategory": sub})
}

func (h *AdminHandler) DeleteSubCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Categories.DeleteSub(c.Context(), id); err != nil {
		return notFoundOr(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ---------- Orders ----------

func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))
	orders, err := h.Orders.List(c.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	o, err := h.Orders.ByID(c.Context(), c.Params("id"))
	if err != nil {
		return notFoundOr(c, err)
	}
	return c.JSON(fiber.Map{"order": o})
}

// SetOrderStatus confirms or cancels a pending WhatsApp order.
func (h *AdminHandler) SetOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	switch req.Status {
	case domain.OrderConfirmed, domain.OrderCancelled:
	default:
		return jsonError(c, fiber.StatusUnprocessableEntity, "unknown status")
	}
	if err := h.Orders.SetStatus(c.Context(), id, req.Status); err != nil {
		return notFoundOr(c, err)
	}
	applog.Audit(c, "admin.order.status", map[string]any{"order": id, "status": req.Status})
	return c.JSON(fiber.Map{"ok": true})
}

// ---------- Reviews ----------

func (h *AdminHandler) ReviewQueue(c *fiber.Ctx) error {
	status := c.Query("status", domain.ReviewPending)
	if status == "all" {
		status = ""
	}
	revs, err := h.Reviews.Queue(c.Context(), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"reviews": revs})
}

func (h *AdminHandler) ModerateReview(c *fiber.Ctx) error {
	id := c.Params("id")
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.Reviews.Moderate(c.Context(), id, req.Status); err != nil {
		if err == services.ErrNotFound {
			return jsonError(c, fiber.StatusUnprocessableEntity, "status must be APPROVED or REJECTED")
		}
		return notFoundOr(c, err)
	}
	applog.Audit(c, "admin.review.moderate", map[string]any{"review": id, "status": req.Status})
	return c.JSON(fiber.Map{"ok": true})
}

// ---------- Users ----------

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Auth.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	u, err := h.Auth.CreateUser(c.Context(), req.Email, req.Name, req.Password, req.Role)
	if err == services.ErrBadCreds {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid email or weak password")
	}
	if err != nil {
		return err
	}
	applog.Audit(c, "admin.user.create", map[string]any{"user": u.ID, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Auth.DeleteUser(c.Context(), id); err != nil {
		return notFoundOr(c, err)
	}
	applog.Audit(c, "admin.user.delete", map[string]any{"user": id})
	return c.JSON(fiber.Map{"ok": true})
}

// ---------- Settings ----------

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	s, err := h.Settings.Get(c.Context(), h.Defaults)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"settings": s})
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var s domain.StoreSettings
	if err := c.BodyParser(&s); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if s.WhatsAppPhone != "" {
		phone, ok := validate.Phone(s.WhatsAppPhone)
		if !ok {
			return jsonError(c, fiber.StatusUnprocessableEntity, "invalid whatsapp phone")
		}
		s.WhatsAppPhone = phone
	}
	if s.DefaultLang != "" {
		lang, ok := validate.Lang(s.DefaultLang)
		if !ok {
			return jsonError(c, fiber.StatusUnprocessableEntity, "unsupported language")
		}
		s.DefaultLang = lang
	}
	if err := h.Settings.Put(c.Context(), s); err != nil {
		return err
	}
	applog.Audit(c, "admin.settings.update", nil)
	return c.JSON(fiber.Map{"settings": s})
}
