package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"velora/internal/domain"
)

// ErrInvalidInput marks flow inputs rejected by schema validation, before any
// service call. Callers match it with errors.Is.
var ErrInvalidInput = errors.New("invalid flow input")

func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// CatalogIndex supplies catalog context to the search/suggest flows and
// resolves the slugs the model returns.
type CatalogIndex interface {
	Summaries(ctx context.Context) ([]domain.ProductSummary, error)
	SummaryBySlug(ctx context.Context, slug string) (domain.ProductSummary, error)
}

type Flows struct {
	Client  *Client
	Catalog CatalogIndex
}

func NewFlows(client *Client, catalog CatalogIndex) *Flows {
	return &Flows{Client: client, Catalog: catalog}
}

// ---------- Checkout message ----------

type MessageLine struct {
	Name     string  `json:"name" validate:"required"`
	Color    string  `json:"color"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity" validate:"gte=1"`
	Price    float64 `json:"price" validate:"gte=0"`
	Image    string  `json:"image"`
}

type CheckoutMessageInput struct {
	Lang          string        `json:"lang" validate:"required"`
	Items         []MessageLine `json:"items" validate:"min=1,dive"`
	Subtotal      float64       `json:"subtotal" validate:"gte=0"`
	Total         float64       `json:"total" validate:"gte=0"`
	OrderID       string        `json:"orderId" validate:"required"`
	CustomerName  string        `json:"customerName" validate:"required"`
	CustomerPhone string        `json:"customerPhone" validate:"required"`
}

type checkoutMessageOutput struct {
	Message string `json:"message" validate:"required"`
}

// CheckoutMessage asks the service for a single formatted order message in
// the customer's language. Errors are deliberately not caught here; the
// caller owns surfacing them.
func (f *Flows) CheckoutMessage(ctx context.Context, in CheckoutMessageInput) (string, error) {
	if err := validate.Struct(in); err != nil {
		return "", invalidInput(err)
	}
	var out checkoutMessageOutput
	if err := f.Client.Generate(ctx, map[string]any{"task": "checkout_message", "payload": in}, &out); err != nil {
		return "", err
	}
	if err := validate.Struct(out); err != nil {
		return "", fmt.Errorf("checkout message output: %w", err)
	}
	return out.Message, nil
}

// ---------- Product search ----------

const maxSearchResults = 5

type searchPrompt struct {
	Query      string                  `json:"query"`
	Lang       string                  `json:"lang,omitempty"`
	Catalog    []domain.ProductSummary `json:"catalog"`
	MaxResults int                     `json:"maxResults"`
}

type slugListOutput struct {
	Slugs []string `json:"slugs" validate:"max=5"`
}

// Search hands the full catalog summary to the model as in-context data and
// resolves the returned slugs back to product summaries. Slugs that no longer
// resolve are dropped. An empty query returns an empty list without any
// service call.
func (f *Flows) Search(ctx context.Context, query, lang string) ([]domain.ProductSummary, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.ProductSummary{}, nil
	}

	catalog, err := f.Catalog.Summaries(ctx)
	if err != nil {
		return nil, err
	}

	var out slugListOutput
	prompt := searchPrompt{Query: query, Lang: lang, Catalog: catalog, MaxResults: maxSearchResults}
	if err := f.Client.Generate(ctx, map[string]any{"task": "product_search", "payload": prompt}, &out); err != nil {
		return nil, err
	}
	if err := validate.Struct(out); err != nil {
		return nil, fmt.Errorf("search output: %w", err)
	}
	return f.resolveSlugs(ctx, out.Slugs, maxSearchResults), nil
}

// ---------- Complementary items ----------

const maxSuggestions = 4

type suggestPrompt struct {
	CartItems  []string                `json:"cartItems"`
	Catalog    []domain.ProductSummary `json:"catalog"`
	MaxResults int                     `json:"maxResults"`
}

type suggestOutput struct {
	Slugs []string `json:"slugs" validate:"max=4"`
}

// Suggest proposes complementary products for the current cart lines.
func (f *Flows) Suggest(ctx context.Context, cartItemNames []string) ([]domain.ProductSummary, error) {
	if len(cartItemNames) == 0 {
		return []domain.ProductSummary{}, nil
	}

	catalog, err := f.Catalog.Summaries(ctx)
	if err != nil {
		return nil, err
	}

	var out suggestOutput
	prompt := suggestPrompt{CartItems: cartItemNames, Catalog: catalog, MaxResults: maxSuggestions}
	if err := f.Client.Generate(ctx, map[string]any{"task": "suggest_items", "payload": prompt}, &out); err != nil {
		return nil, err
	}
	if err := validate.Struct(out); err != nil {
		return nil, fmt.Errorf("suggest output: %w", err)
	}
	return f.resolveSlugs(ctx, out.Slugs, maxSuggestions), nil
}

func (f *Flows) resolveSlugs(ctx context.Context, slugs []string, limit int) []domain.ProductSummary {
	results := make([]domain.ProductSummary, 0, len(slugs))
	for _, slug := range slugs {
		if len(results) == limit {
			break
		}
		p, err := f.Catalog.SummaryBySlug(ctx, slug)
		if err != nil {
			continue // stale or hallucinated slug
		}
		results = append(results, p)
	}
	return results
}

// ---------- Virtual try-on ----------

type TryOnInput struct {
	PersonImage  string `json:"personImage" validate:"required,startswith=data:image/"`
	ProductImage string `json:"productImage" validate:"required"`
}

type tryOnOutput struct {
	Image string `json:"image" validate:"required,startswith=data:image/"`
}

// Validate runs the input schema check on its own, so callers can reject a
// request before spending anything on it.
func (in TryOnInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}
	return nil
}

// TryOn generates a composite image, returned as a data URI. The daily usage
// cap is enforced by the caller before this runs.
func (f *Flows) TryOn(ctx context.Context, in TryOnInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	var out tryOnOutput
	if err := f.Client.Generate(ctx, map[string]any{"task": "virtual_tryon", "payload": in}, &out); err != nil {
		return "", err
	}
	if err := validate.Struct(out); err != nil {
		return "", fmt.Errorf("try-on output: %w", err)
	}
	return out.Image, nil
}
