// Package store holds the per-session state stores: cart, wishlist,
// preferences and try-on usage. Each store is an explicit object with a
// mutation API; every mutation writes the full value back through the
// persistence adapter, and a value that fails to parse on load is logged and
// reset to empty rather than surfaced as an error.
package store

import (
	"velora/internal/persist"
)

const (
	keyCart       = "cart"
	keyWishlist   = "wishlist"
	keyLang       = "lang"
	keyCurrency   = "currency"
	keyTryOnCount = "tryon_count"
	keyTryOnDate  = "tryon_date"
)

// Manager hands out session-bound store objects. Stores are cheap to build;
// state lives in the adapter, so a fresh store per request reads current data
// the way a page load re-reads local storage.
type Manager struct {
	kv persist.KV
}

func NewManager(kv persist.KV) *Manager { return &Manager{kv: kv} }

func (m *Manager) Cart(sessionID string) *Cart {
	c := &Cart{kv: m.kv, sid: sessionID}
	c.load()
	return c
}

func (m *Manager) Wishlist(sessionID string) *Wishlist {
	w := &Wishlist{kv: m.kv, sid: sessionID}
	w.load()
	return w
}

func (m *Manager) Prefs(sessionID string) *Prefs {
	return &Prefs{kv: m.kv, sid: sessionID}
}

func (m *Manager) Usage(sessionID string) *Usage {
	return &Usage{kv: m.kv, sid: sessionID}
}
