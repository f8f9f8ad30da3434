package store

import (
	"encoding/json"

	"velora/internal/domain"
	applog "velora/internal/log"
	"velora/internal/persist"
)

// Cart holds one session's cart lines, keyed by variant id.
type Cart struct {
	kv    persist.KV
	sid   string
	items []domain.CartItem
}

func (c *Cart) load() {
	raw, ok, err := c.kv.Get(c.sid, keyCart)
	if err != nil || !ok {
		c.items = nil
		return
	}
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		applog.Fail("store.load.reset", err, map[string]any{"key": keyCart})
		c.items = nil
		_ = c.kv.Delete(c.sid, keyCart)
		return
	}
	c.items = items
}

func (c *Cart) persist() error {
	b, err := json.Marshal(c.items)
	if err != nil {
		return err
	}
	return c.kv.Set(c.sid, keyCart, string(b))
}

// Add merges by variant id: an existing line gains the incoming quantity, a
// new variant appends the snapshot as-is.
func (c *Cart) Add(item domain.CartItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.items {
		if c.items[i].VariantID == item.VariantID {
			c.items[i].Quantity += item.Quantity
			return c.persist()
		}
	}
	c.items = append(c.items, item)
	return c.persist()
}

func (c *Cart) Remove(variantID string) error {
	for i := range c.items {
		if c.items[i].VariantID == variantID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.persist()
		}
	}
	return nil
}

// SetQuantity sets a line's quantity directly, clamped to 1 at the low end.
func (c *Cart) SetQuantity(variantID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	for i := range c.items {
		if c.items[i].VariantID == variantID {
			c.items[i].Quantity = qty
			return c.persist()
		}
	}
	return nil
}

func (c *Cart) Clear() error {
	c.items = nil
	return c.kv.Delete(c.sid, keyCart)
}

// Items returns a copy; callers cannot mutate cart state around the API.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Count is the sum of line quantities.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Total is the sum of price x quantity in the canonical currency, recomputed
// from current state on every call.
func (c *Cart) Total() float64 {
	t := 0.0
	for _, it := range c.items {
		t += it.Price * float64(it.Quantity)
	}
	return t
}
