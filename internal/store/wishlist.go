package store

import (
	"encoding/json"

	applog "velora/internal/log"
	"velora/internal/persist"
)

// Wishlist is a set of liked product ids.
type Wishlist struct {
	kv  persist.KV
	sid string
	ids []string
}

func (w *Wishlist) load() {
	raw, ok, err := w.kv.Get(w.sid, keyWishlist)
	if err != nil || !ok {
		w.ids = nil
		return
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		applog.Fail("store.load.reset", err, map[string]any{"key": keyWishlist})
		w.ids = nil
		_ = w.kv.Delete(w.sid, keyWishlist)
		return
	}
	w.ids = ids
}

func (w *Wishlist) persist() error {
	b, err := json.Marshal(w.ids)
	if err != nil {
		return err
	}
	return w.kv.Set(w.sid, keyWishlist, string(b))
}

// Add is idempotent; a present id is left alone.
func (w *Wishlist) Add(productID string) error {
	if w.Has(productID) {
		return nil
	}
	w.ids = append(w.ids, productID)
	return w.persist()
}

func (w *Wishlist) Remove(productID string) error {
	for i, id := range w.ids {
		if id == productID {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			return w.persist()
		}
	}
	return nil
}

func (w *Wishlist) Has(productID string) bool {
	for _, id := range w.ids {
		if id == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Count() int { return len(w.ids) }

func (w *Wishlist) IDs() []string {
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}
