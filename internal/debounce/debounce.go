// Package debounce batches rapid writes to the same key into one, running the
// latest function once a configurable quiet period passes with no new input.
package debounce

import (
	"sync"
	"time"
)

type pending struct {
	timer *time.Timer
	fn    func()
}

type Writer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pending
}

func NewWriter(delay time.Duration) *Writer {
	return &Writer{delay: delay, pending: map[string]*pending{}}
}

// Set schedules fn to run after the quiet period. A newer Set for the same
// key cancels the older one, so only the latest write lands.
func (w *Writer) Set(key string, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.pending[key]; ok {
		p.timer.Stop()
	}
	p := &pending{fn: fn}
	p.timer = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		if w.pending[key] == p {
			delete(w.pending, key)
		}
		w.mu.Unlock()
		fn()
	})
	w.pending[key] = p
}

// Flush runs every pending write immediately. Used on shutdown so a debounced
// edit is never lost to process exit.
func (w *Writer) Flush() {
	w.mu.Lock()
	var fns []func()
	for key, p := range w.pending {
		if p.timer.Stop() {
			fns = append(fns, p.fn)
		}
		delete(w.pending, key)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len reports how many writes are waiting out their quiet period.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}
