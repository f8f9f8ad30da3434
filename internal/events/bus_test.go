package events_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"velora/internal/events"
)

func TestBusConsolidatesBurst(t *testing.T) {
	bus := events.NewBus(32)
	defer bus.Close()

	var calls atomic.Int32
	var total atomic.Int32
	stop := bus.SubscribeDebounced(30*time.Millisecond, func(count int, last events.PermissionDenied) {
		calls.Add(1)
		total.Add(int32(count))
		if last.Collection != "orders" {
			t.Errorf("want last event from orders, got %s", last.Collection)
		}
	})
	defer stop()

	for i := 0; i < 5; i++ {
		bus.Publish(events.PermissionDenied{
			Op:         "insert",
			Collection: "orders",
			Err:        errors.New("unauthorized"),
			At:         time.Now(),
		})
	}

	// One consolidated callback for the whole burst.
	deadline := time.After(500 * time.Millisecond)
	for calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("listener never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}
	time.Sleep(60 * time.Millisecond)
	if calls.Load() != 1 {
		t.Fatalf("want exactly one consolidated call, got %d", calls.Load())
	}
	if total.Load() != 5 {
		t.Fatalf("want count 5, got %d", total.Load())
	}
}

func TestBusStopFlushesPending(t *testing.T) {
	bus := events.NewBus(8)
	defer bus.Close()

	got := make(chan int, 1)
	stop := bus.SubscribeDebounced(time.Hour, func(count int, _ events.PermissionDenied) {
		got <- count
	})

	bus.Publish(events.PermissionDenied{Op: "update", Collection: "products"})
	// Give the subscriber goroutine a moment to pull the event.
	time.Sleep(20 * time.Millisecond)
	stop()

	select {
	case n := <-got:
		if n != 1 {
			t.Fatalf("want pending count 1 on stop, got %d", n)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("stop did not flush the pending event")
	}
}
