package services

import (
	"context"
	"math"

	"github.com/google/uuid"

	"velora/internal/domain"
	"velora/internal/validate"
)

type reviewStore interface {
	Create(ctx context.Context, r domain.Review) error
	ByID(ctx context.Context, id string) (domain.Review, error)
	SetStatus(ctx context.Context, id, status string) error
	Aggregate(ctx context.Context, productID string) (avg float64, count int, err error)
	ListByStatus(ctx context.Context, status string) ([]domain.Review, error)
}

type ratingWriter interface {
	ByID(ctx context.Context, id string) (domain.Product, error)
	SetRating(ctx context.Context, productID string, rating float64, count int) error
}

// ReviewService accepts shopper reviews into a moderation queue and keeps the
// product's denormalized rating in sync with the approved set.
type ReviewService struct {
	Reviews reviewStore
	Prods   ratingWriter
}

func NewReviewService(reviews reviewStore, prods ratingWriter) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods}
}

// Submit stores a review as PENDING. It never becomes visible without
// moderation.
func (s *ReviewService) Submit(ctx context.Context, productID, author string, rating int, title, comment string) (domain.Review, error) {
	if !validate.Rating(rating) {
		return domain.Review{}, ErrBadRating
	}
	if _, err := s.Prods.ByID(ctx, productID); err != nil {
		return domain.Review{}, notFound(err)
	}
	rev := domain.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		Author:    author,
		Rating:    rating,
		Title:     title,
		Comment:   comment,
		Status:    domain.ReviewPending,
	}
	if err := s.Reviews.Create(ctx, rev); err != nil {
		return domain.Review{}, err
	}
	return rev, nil
}

// Moderate approves or rejects a review, then recomputes the product's rating
// aggregate from the approved set.
func (s *ReviewService) Moderate(ctx context.Context, reviewID, status string) error {
	if status != domain.ReviewApproved && status != domain.ReviewRejected {
		return ErrNotFound
	}
	rev, err := s.Reviews.ByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.Reviews.SetStatus(ctx, reviewID, status); err != nil {
		return err
	}
	avg, count, err := s.Reviews.Aggregate(ctx, rev.ProductID)
	if err != nil {
		return err
	}
	// One decimal is enough for a star display.
	avg = math.Round(avg*10) / 10
	return s.Prods.SetRating(ctx, rev.ProductID, avg, count)
}

func (s *ReviewService) Queue(ctx context.Context, status string) ([]domain.Review, error) {
	return s.Reviews.ListByStatus(ctx, status)
}
