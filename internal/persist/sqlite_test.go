package persist_test

import (
	"testing"

	"velora/internal/persist"
)

func TestSQLiteRoundTrip(t *testing.T) {
	kv, err := persist.OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get("s1", "cart"); err != nil || ok {
		t.Fatalf("missing key should be (\"\", false, nil), got ok=%v err=%v", ok, err)
	}

	if err := kv.Set("s1", "cart", `[{"variantId":"p1:M:red"}]`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := kv.Get("s1", "cart")
	if err != nil || !ok || v != `[{"variantId":"p1:M:red"}]` {
		t.Fatalf("bad read back: %q ok=%v err=%v", v, ok, err)
	}

	// Overwrite replaces the whole value.
	if err := kv.Set("s1", "cart", `[]`); err != nil {
		t.Fatal(err)
	}
	v, _, _ = kv.Get("s1", "cart")
	if v != `[]` {
		t.Fatalf("want overwrite, got %q", v)
	}

	// Sessions are isolated.
	if _, ok, _ := kv.Get("s2", "cart"); ok {
		t.Fatal("session s2 should not see s1 data")
	}

	if err := kv.Delete("s1", "cart"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := kv.Get("s1", "cart"); ok {
		t.Fatal("key should be gone after delete")
	}
}
