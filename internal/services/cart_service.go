package services

import (
	"context"

	"velora/internal/domain"
	"velora/internal/store"
)

type productByID interface {
	ByID(ctx context.Context, id string) (domain.Product, error)
}

// CartService turns (product, size, color) picks into cart line snapshots.
type CartService struct {
	Prods productByID
}

func NewCartService(prods productByID) *CartService {
	return &CartService{Prods: prods}
}

// Add looks the variant up, checks stock and writes a denormalized snapshot
// into the session cart. Later price or image edits do not rewrite lines that
// are already in a cart.
func (s *CartService) Add(ctx context.Context, cart *store.Cart, productID, size, color string, qty int) (domain.CartItem, error) {
	p, err := s.Prods.ByID(ctx, productID)
	if err != nil {
		return domain.CartItem{}, notFound(err)
	}
	if p.Status != domain.ProductPublished {
		return domain.CartItem{}, ErrNotFound
	}
	v, ok := p.FindVariant(size, color)
	if !ok {
		return domain.CartItem{}, ErrNoVariant
	}
	if v.Stock <= 0 {
		return domain.CartItem{}, ErrOutOfStock
	}

	image := v.Image
	if image == "" {
		image = p.FirstImage()
	}
	item := domain.CartItem{
		VariantID: domain.VariantKey(p.ID, size, color),
		ProductID: p.ID,
		Slug:      p.Slug,
		Name:      p.Name,
		Price:     p.Price,
		Image:     image,
		Color:     color,
		Size:      size,
		Quantity:  qty,
	}
	if err := cart.Add(item); err != nil {
		return domain.CartItem{}, err
	}
	return item, nil
}
