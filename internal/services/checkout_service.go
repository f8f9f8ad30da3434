package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"velora/internal/ai"
	"velora/internal/domain"
	"velora/internal/i18n"
	applog "velora/internal/log"
	"velora/internal/store"
)

type orderCreator interface {
	Create(ctx context.Context, o domain.Order) error
}

type messageMaker interface {
	CheckoutMessage(ctx context.Context, in ai.CheckoutMessageInput) (string, error)
}

type settingsGetter interface {
	Get(ctx context.Context, defaults domain.StoreSettings) (domain.StoreSettings, error)
}

// CheckoutService records the order and hands the shopper off to WhatsApp
// with a pre-filled message. The shop has no payment step; confirmation
// happens in the chat and an admin flips the order status afterwards.
type CheckoutService struct {
	Orders   orderCreator
	Flows    messageMaker
	Settings settingsGetter
	Defaults domain.StoreSettings
}

func NewCheckoutService(orders orderCreator, flows messageMaker, settings settingsGetter, defaults domain.StoreSettings) *CheckoutService {
	return &CheckoutService{Orders: orders, Flows: flows, Settings: settings, Defaults: defaults}
}

type CheckoutResult struct {
	Order       domain.Order `json:"order"`
	Message     string       `json:"message"`
	WhatsAppURL string       `json:"whatsappUrl"`
}

// Place validates the cart, persists a PENDING_WHATSAPP order, generates the
// chat message and clears the cart. The order exists before the shopper ever
// opens WhatsApp, so an abandoned handoff still leaves a trace for follow-up.
func (s *CheckoutService) Place(ctx context.Context, sid string, cart *store.Cart, name, phone, lang string) (CheckoutResult, error) {
	items := cart.Items()
	if len(items) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	// Read the handoff number first. A settings failure here aborts checkout
	// with the cart and order book untouched, so the shopper can retry.
	settings, err := s.Settings.Get(ctx, s.Defaults)
	if err != nil {
		return CheckoutResult{}, err
	}

	order := domain.Order{
		ID:        "ORD-" + strings.ToUpper(uuid.NewString()[:8]),
		SessionID: sid,
		Customer:  domain.OrderCustomer{Name: name, Phone: phone},
		Lines:     make([]domain.OrderLine, 0, len(items)),
		Total:     cart.Total(),
		Lang:      lang,
		Status:    domain.OrderPendingWhatsApp,
	}
	for _, it := range items {
		order.Lines = append(order.Lines, domain.OrderLine{
			VariantID: it.VariantID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Color:     it.Color,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Image:     it.Image,
		})
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		return CheckoutResult{}, err
	}

	msg := s.buildMessage(ctx, order, name, phone, lang)

	if err := cart.Clear(); err != nil {
		return CheckoutResult{}, err
	}

	wa := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + settings.WhatsAppPhone,
		RawQuery: url.Values{"text": {msg}}.Encode(),
	}
	return CheckoutResult{Order: order, Message: msg, WhatsAppURL: wa.String()}, nil
}

// buildMessage prefers the generated message and falls back to a plain
// deterministic one, so checkout keeps working when the AI service is down.
func (s *CheckoutService) buildMessage(ctx context.Context, order domain.Order, name, phone, lang string) string {
	in := ai.CheckoutMessageInput{
		Lang:          lang,
		Items:         make([]ai.MessageLine, 0, len(order.Lines)),
		Subtotal:      order.Total,
		Total:         order.Total,
		OrderID:       order.ID,
		CustomerName:  name,
		CustomerPhone: phone,
	}
	for _, l := range order.Lines {
		in.Items = append(in.Items, ai.MessageLine{
			Name: l.Name, Color: l.Color, Size: l.Size,
			Quantity: l.Quantity, Price: l.Price, Image: l.Image,
		})
	}
	msg, err := s.Flows.CheckoutMessage(ctx, in)
	if err == nil {
		return msg
	}
	applog.Fail("checkout.message.fallback", err, map[string]any{"order": order.ID})

	var b strings.Builder
	b.WriteString(i18n.T(lang, "checkout.greeting", map[string]any{
		"name": name, "orderId": order.ID,
	}))
	for _, l := range order.Lines {
		fmt.Fprintf(&b, "\n%dx %s (%s, %s) - $%.2f", l.Quantity, l.Name, l.Size, l.Color, l.Price)
	}
	fmt.Fprintf(&b, "\n%s $%.2f", i18n.T(lang, "checkout.total", nil), order.Total)
	return b.String()
}
