package store_test

import (
	"testing"

	"velora/internal/domain"
	"velora/internal/persist"
	"velora/internal/store"
)

func item(variant string, price float64, qty int) domain.CartItem {
	return domain.CartItem{
		VariantID: variant,
		ProductID: "p-" + variant,
		Name:      "Item " + variant,
		Price:     price,
		Color:     "black",
		Size:      "M",
		Quantity:  qty,
	}
}

func TestCartAddMergesByVariant(t *testing.T) {
	m := store.NewManager(persist.NewMemory())
	c := m.Cart("sid-1")

	if err := c.Add(item("v1", 10, 2)); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(item("v1", 10, 3)); err != nil {
		t.Fatal(err)
	}

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("want one merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("want qty 2+3=5, got %d", items[0].Quantity)
	}
	if c.Count() != 5 {
		t.Fatalf("want count 5, got %d", c.Count())
	}
}

func TestCartTotalScenario(t *testing.T) {
	m := store.NewManager(persist.NewMemory())
	c := m.Cart("sid-1")

	// V1 at 20.00 x1, V2 at 15.00 x2 => 50.00
	if err := c.Add(item("V1", 20.00, 1)); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(item("V2", 15.00, 2)); err != nil {
		t.Fatal(err)
	}
	if got := c.Total(); got != 50.00 {
		t.Fatalf("want total 50.00, got %v", got)
	}

	if err := c.Remove("V1"); err != nil {
		t.Fatal(err)
	}
	if got := c.Total(); got != 30.00 {
		t.Fatalf("want total 30.00 after removing V1, got %v", got)
	}
}

func TestCartSetQuantityClampsToOne(t *testing.T) {
	m := store.NewManager(persist.NewMemory())
	c := m.Cart("sid-1")

	if err := c.Add(item("v1", 8, 4)); err != nil {
		t.Fatal(err)
	}
	if err := c.SetQuantity("v1", 0); err != nil {
		t.Fatal(err)
	}
	if c.Items()[0].Quantity != 1 {
		t.Fatalf("want clamp to 1, got %d", c.Items()[0].Quantity)
	}
	if err := c.SetQuantity("v1", 7); err != nil {
		t.Fatal(err)
	}
	if got := c.Total(); got != 56 {
		t.Fatalf("total must follow quantity edits, got %v", got)
	}
}

func TestCartPersistsAcrossLoads(t *testing.T) {
	kv := persist.NewMemory()
	m := store.NewManager(kv)

	c := m.Cart("sid-1")
	if err := c.Add(item("v1", 12.5, 2)); err != nil {
		t.Fatal(err)
	}

	// A fresh store for the same session sees the persisted lines.
	c2 := m.Cart("sid-1")
	if c2.Count() != 2 || c2.Total() != 25.0 {
		t.Fatalf("reload lost state: count=%d total=%v", c2.Count(), c2.Total())
	}

	// Other sessions see nothing.
	if n := m.Cart("sid-2").Count(); n != 0 {
		t.Fatalf("session isolation broken, got count %d", n)
	}
}

func TestCartCorruptStateResetsEmpty(t *testing.T) {
	kv := persist.NewMemory()
	_ = kv.Set("sid-1", "cart", `{"not":"a list"`)

	c := store.NewManager(kv).Cart("sid-1")
	if c.Count() != 0 || len(c.Items()) != 0 {
		t.Fatalf("corrupt payload must reset to empty, got %+v", c.Items())
	}

	// The store stays usable after the reset.
	if err := c.Add(item("v1", 5, 1)); err != nil {
		t.Fatal(err)
	}
	if c.Count() != 1 {
		t.Fatalf("want count 1 after re-add, got %d", c.Count())
	}
}

func TestCartClear(t *testing.T) {
	m := store.NewManager(persist.NewMemory())
	c := m.Cart("sid-1")
	_ = c.Add(item("v1", 5, 2))
	_ = c.Add(item("v2", 9, 1))

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if c.Count() != 0 || c.Total() != 0 {
		t.Fatalf("clear left state behind: count=%d total=%v", c.Count(), c.Total())
	}
}
