package store_test

import (
	"testing"
	"time"

	"velora/internal/persist"
	"velora/internal/store"
)

func TestUsageCapAndDailyReset(t *testing.T) {
	m := store.NewManager(persist.NewMemory())
	u := m.Usage("sid-1")

	day1 := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	const cap = 3

	for i := 0; i < cap; i++ {
		ok, err := u.Allow(day1, cap)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("use %d should be allowed", i+1)
		}
	}

	// Cap spent: further attempts are blocked locally.
	if ok, _ := u.Allow(day1, cap); ok {
		t.Fatal("use beyond cap must be rejected")
	}
	if r := u.Remaining(day1, cap); r != 0 {
		t.Fatalf("want 0 remaining, got %d", r)
	}

	// Next calendar day: counter resets.
	day2 := day1.Add(24 * time.Hour)
	if r := u.Remaining(day2, cap); r != cap {
		t.Fatalf("want full cap on a new day, got %d", r)
	}
	if ok, _ := u.Allow(day2, cap); !ok {
		t.Fatal("first use of a new day must be allowed")
	}
}

func TestUsageRefundReturnsAUse(t *testing.T) {
	m := store.NewManager(persist.NewMemory())
	u := m.Usage("sid-1")
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	const cap = 2

	if ok, _ := u.Allow(now, cap); !ok {
		t.Fatal("first use should be allowed")
	}
	if err := u.Refund(now); err != nil {
		t.Fatal(err)
	}
	if r := u.Remaining(now, cap); r != cap {
		t.Fatalf("refund should restore the use, remaining = %d, want %d", r, cap)
	}

	// Refund with nothing consumed stays at zero, never negative.
	if err := u.Refund(now); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < cap; i++ {
		if ok, _ := u.Allow(now, cap); !ok {
			t.Fatalf("use %d should be allowed after refunds", i+1)
		}
	}
	if ok, _ := u.Allow(now, cap); ok {
		t.Fatal("cap must still hold after refunds")
	}

	// A stale refund from yesterday does not touch today's counter.
	if err := u.Refund(now.Add(-24 * time.Hour)); err != nil {
		t.Fatal(err)
	}
	if ok, _ := u.Allow(now, cap); ok {
		t.Fatal("stale refund must not free a use")
	}
}

func TestUsageGarbageCounterTreatedAsZero(t *testing.T) {
	kv := persist.NewMemory()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	_ = kv.Set("sid-1", "tryon_date", now.Format("2006-01-02"))
	_ = kv.Set("sid-1", "tryon_count", "banana")

	u := store.NewManager(kv).Usage("sid-1")
	if ok, err := u.Allow(now, 1); err != nil || !ok {
		t.Fatalf("garbage counter should reset to zero, ok=%v err=%v", ok, err)
	}
	if ok, _ := u.Allow(now, 1); ok {
		t.Fatal("cap of one must now be spent")
	}
}
