// Package persist is the session-scoped key/value layer backing the cart,
// wishlist, preference and usage stores. It plays the role browser local
// storage plays in the storefront UI: values are opaque strings owned by one
// session, with no cross-session visibility.
package persist

// KV is the persistence adapter the stores write through. Implementations must
// treat a missing key as (value "", ok false, err nil).
type KV interface {
	Get(sessionID, key string) (string, bool, error)
	Set(sessionID, key, value string) error
	Delete(sessionID, key string) error
}
