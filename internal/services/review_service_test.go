package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"velora/internal/debounce"
	"velora/internal/domain"
	"velora/internal/services"
)

type fakeReviews struct {
	byID map[string]domain.Review
	avg  float64
	n    int
}

func (f *fakeReviews) Create(_ context.Context, r domain.Review) error {
	f.byID[r.ID] = r
	return nil
}

func (f *fakeReviews) ByID(_ context.Context, id string) (domain.Review, error) {
	r, ok := f.byID[id]
	if !ok {
		return domain.Review{}, errors.New("not found")
	}
	return r, nil
}

func (f *fakeReviews) SetStatus(_ context.Context, id, status string) error {
	r := f.byID[id]
	r.Status = status
	f.byID[id] = r
	return nil
}

func (f *fakeReviews) Aggregate(context.Context, string) (float64, int, error) {
	return f.avg, f.n, nil
}

func (f *fakeReviews) ListByStatus(_ context.Context, status string) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, r := range f.byID {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeRated struct {
	*fakeProducts
	rating float64
	count  int
}

func (f *fakeRated) SetRating(_ context.Context, _ string, rating float64, count int) error {
	f.rating, f.count = rating, count
	return nil
}

func TestReviewSubmitGoesToModeration(t *testing.T) {
	reviews := &fakeReviews{byID: map[string]domain.Review{}}
	svc := services.NewReviewService(reviews, &fakeRated{fakeProducts: catalog()})

	rev, err := svc.Submit(context.Background(), "p1", "Sara", 5, "Great", "Fits well")
	if err != nil {
		t.Fatal(err)
	}
	if rev.Status != domain.ReviewPending {
		t.Fatalf("new review status = %q, want PENDING", rev.Status)
	}

	if _, err := svc.Submit(context.Background(), "p1", "Sara", 0, "", ""); !errors.Is(err, services.ErrBadRating) {
		t.Fatalf("rating 0: want ErrBadRating, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "p1", "Sara", 6, "", ""); !errors.Is(err, services.ErrBadRating) {
		t.Fatalf("rating 6: want ErrBadRating, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "missing", "Sara", 4, "", ""); err == nil {
		t.Fatal("unknown product must error")
	}
}

func TestModerationUpdatesProductAggregate(t *testing.T) {
	reviews := &fakeReviews{byID: map[string]domain.Review{
		"r1": {ID: "r1", ProductID: "p1", Rating: 4, Status: domain.ReviewPending},
	}}
	// The aggregate the repo reports after approval.
	reviews.avg, reviews.n = 4.25, 2

	prods := &fakeRated{fakeProducts: catalog()}
	svc := services.NewReviewService(reviews, prods)

	if err := svc.Moderate(context.Background(), "r1", domain.ReviewApproved); err != nil {
		t.Fatal(err)
	}
	if reviews.byID["r1"].Status != domain.ReviewApproved {
		t.Fatal("review not approved")
	}
	if prods.rating != 4.3 || prods.count != 2 {
		t.Fatalf("aggregate = (%v, %d), want (4.3, 2)", prods.rating, prods.count)
	}

	if err := svc.Moderate(context.Background(), "r1", "WEIRD"); err == nil {
		t.Fatal("unknown moderation status must error")
	}
}

type fakeStock struct {
	mu     chan struct{}
	writes []int
}

func (f *fakeStock) SetVariantStock(_ context.Context, _, _, _ string, qty int) error {
	f.writes = append(f.writes, qty)
	select {
	case f.mu <- struct{}{}:
	default:
	}
	return nil
}

func TestStockEditsDebounceToLastWrite(t *testing.T) {
	stock := &fakeStock{mu: make(chan struct{}, 1)}
	svc := services.NewStockService(stock, debounce.NewWriter(30*time.Millisecond))

	for _, q := range []int{1, 2, 3, 7} {
		if err := svc.Set("p1", "M", "white", q); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-stock.mu:
	case <-time.After(time.Second):
		t.Fatal("debounced write never ran")
	}
	if len(stock.writes) != 1 || stock.writes[0] != 7 {
		t.Fatalf("writes = %v, want [7]", stock.writes)
	}

	if err := svc.Set("p1", "M", "white", -1); !errors.Is(err, services.ErrBadQuantity) {
		t.Fatalf("negative qty: want ErrBadQuantity, got %v", err)
	}
}
