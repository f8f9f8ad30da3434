package services

import (
	"context"

	"velora/internal/domain"
	"velora/internal/repos"
)

// ProductReader is the slice of the product repo the catalog needs.
type ProductReader interface {
	List(ctx context.Context, f repos.ProductFilter) ([]domain.Product, error)
	BySlug(ctx context.Context, slug string) (domain.Product, error)
	Summaries(ctx context.Context) ([]domain.ProductSummary, error)
	SummaryBySlug(ctx context.Context, slug string) (domain.ProductSummary, error)
}

type CategoryReader interface {
	List(ctx context.Context) ([]domain.Category, error)
	SubCategories(ctx context.Context, categoryID string) ([]domain.SubCategory, error)
}

type ReviewReader interface {
	ListApproved(ctx context.Context, productID string) ([]domain.Review, error)
}

type CatalogService struct {
	Prods   ProductReader
	Cats    CategoryReader
	Reviews ReviewReader
}

func NewCatalogService(prods ProductReader, cats CategoryReader, reviews ReviewReader) *CatalogService {
	return &CatalogService{Prods: prods, Cats: cats, Reviews: reviews}
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) SubCategories(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	return s.Cats.SubCategories(ctx, categoryID)
}

// ListProducts serves the public storefront grid; only published products.
func (s *CatalogService) ListProducts(ctx context.Context, categoryID, subCategoryID string, page, pageSize int) ([]domain.Product, error) {
	return s.Prods.List(ctx, repos.ProductFilter{
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Status:        domain.ProductPublished,
		Page:          page,
		PageSize:      pageSize,
	})
}

type ProductDetail struct {
	Product domain.Product  `json:"product"`
	Reviews []domain.Review `json:"reviews"`
}

// ProductBySlug returns a published product and its approved reviews.
func (s *CatalogService) ProductBySlug(ctx context.Context, slug string) (ProductDetail, error) {
	p, err := s.Prods.BySlug(ctx, slug)
	if err != nil {
		return ProductDetail{}, notFound(err)
	}
	if p.Status != domain.ProductPublished {
		return ProductDetail{}, ErrNotFound
	}
	revs, err := s.Reviews.ListApproved(ctx, p.ID)
	if err != nil {
		return ProductDetail{}, err
	}
	return ProductDetail{Product: p, Reviews: revs}, nil
}

// Summaries exposes the slim catalog used as AI flow context.
func (s *CatalogService) Summaries(ctx context.Context) ([]domain.ProductSummary, error) {
	return s.Prods.Summaries(ctx)
}

func (s *CatalogService) SummaryBySlug(ctx context.Context, slug string) (domain.ProductSummary, error) {
	return s.Prods.SummaryBySlug(ctx, slug)
}
