package store_test

import (
	"testing"

	"velora/internal/persist"
	"velora/internal/store"
)

func TestWishlistSetSemantics(t *testing.T) {
	m := store.NewManager(persist.NewMemory())
	w := m.Wishlist("sid-1")

	if err := w.Add("p1"); err != nil {
		t.Fatal(err)
	}
	if !w.Has("p1") {
		t.Fatal("p1 should be present right after Add")
	}
	if w.Count() != 1 {
		t.Fatalf("want count 1, got %d", w.Count())
	}

	// Duplicate add leaves the count unchanged.
	if err := w.Add("p1"); err != nil {
		t.Fatal(err)
	}
	if w.Count() != 1 {
		t.Fatalf("duplicate add changed count to %d", w.Count())
	}

	if err := w.Remove("p1"); err != nil {
		t.Fatal(err)
	}
	if w.Has("p1") {
		t.Fatal("p1 should be gone right after Remove")
	}
	if w.Count() != 0 {
		t.Fatalf("want count 0, got %d", w.Count())
	}
}

func TestWishlistPersistsAndResetsOnCorrupt(t *testing.T) {
	kv := persist.NewMemory()
	m := store.NewManager(kv)

	w := m.Wishlist("sid-1")
	_ = w.Add("p1")
	_ = w.Add("p2")

	w2 := m.Wishlist("sid-1")
	if w2.Count() != 2 || !w2.Has("p2") {
		t.Fatalf("reload lost state: %v", w2.IDs())
	}

	_ = kv.Set("sid-1", "wishlist", `not json`)
	w3 := m.Wishlist("sid-1")
	if w3.Count() != 0 {
		t.Fatalf("corrupt payload must reset to empty, got %v", w3.IDs())
	}
}
