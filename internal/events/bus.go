// Package events carries database permission failures to a single listener so
// the API surfaces one consolidated warning instead of one per failed call.
package events

import (
	"sync"
	"time"
)

// PermissionDenied is the only event shape on the bus.
type PermissionDenied struct {
	Op         string
	Collection string
	Err        error
	At         time.Time
}

type Bus struct {
	mu     sync.Mutex
	ch     chan PermissionDenied
	closed bool
}

func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 16
	}
	return &Bus{ch: make(chan PermissionDenied, buffer)}
}

// Publish never blocks the failing call path; when the buffer is full the
// event is dropped (the listener reports counts, not individual events, so a
// drop only understates the count).
func (b *Bus) Publish(e PermissionDenied) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.ch <- e:
	default:
	}
}

// SubscribeDebounced starts a goroutine that calls fn at most once per quiet
// period: after an event arrives, delivery waits until d passes with no
// further events, then fn receives the count seen and the last event. The
// returned stop function closes the subscription.
func (b *Bus) SubscribeDebounced(d time.Duration, fn func(count int, last PermissionDenied)) (stop func()) {
	done := make(chan struct{})
	go func() {
		var (
			count int
			last  PermissionDenied
			timer *time.Timer
			fire  <-chan time.Time
		)
		for {
			select {
			case e, ok := <-b.ch:
				if !ok {
					return
				}
				count++
				last = e
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(d)
				}
				fire = timer.C
			case <-fire:
				fn(count, last)
				count = 0
				fire = nil
			case <-done:
				if count > 0 {
					fn(count, last)
				}
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Close releases the bus; further publishes are no-ops.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}
