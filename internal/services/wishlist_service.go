package services

import (
	"context"

	"velora/internal/domain"
	"velora/internal/store"
)

// WishlistService resolves the wished product ids back to live catalog data.
// Ids whose products were deleted or unpublished are silently skipped.
type WishlistService struct {
	Prods productByID
}

func NewWishlistService(prods productByID) *WishlistService {
	return &WishlistService{Prods: prods}
}

// Toggle flips membership and reports the new state.
func (s *WishlistService) Toggle(wl *store.Wishlist, productID string) (liked bool, err error) {
	if wl.Has(productID) {
		return false, wl.Remove(productID)
	}
	return true, wl.Add(productID)
}

func (s *WishlistService) Products(ctx context.Context, wl *store.Wishlist) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, id := range wl.IDs() {
		p, err := s.Prods.ByID(ctx, id)
		if err != nil || p.Status != domain.ProductPublished {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
