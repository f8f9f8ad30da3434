package services

import (
	"context"
	"time"

	"velora/internal/debounce"
	"velora/internal/domain"
	applog "velora/internal/log"
)

type stockWriter interface {
	SetVariantStock(ctx context.Context, productID, size, color string, qty int) error
}

// StockService debounces rapid admin stock edits per variant so a burst of
// keystrokes lands as a single database write.
type StockService struct {
	Prods  stockWriter
	Writer *debounce.Writer
}

func NewStockService(prods stockWriter, writer *debounce.Writer) *StockService {
	return &StockService{Prods: prods, Writer: writer}
}

// Set validates and schedules a stock write. The write itself runs after the
// quiet period, detached from the request that triggered it.
func (s *StockService) Set(productID, size, color string, qty int) error {
	if qty < 0 {
		return ErrBadQuantity
	}
	key := domain.VariantKey(productID, size, color)
	s.Writer.Set(key, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Prods.SetVariantStock(ctx, productID, size, color, qty); err != nil {
			applog.Fail("stock.write", err, map[string]any{"variant": key, "qty": qty})
			return
		}
		applog.Event("stock.write", map[string]any{"variant": key, "qty": qty})
	})
	return nil
}

// Flush forces all pending stock writes through. Called on shutdown.
func (s *StockService) Flush() { s.Writer.Flush() }
