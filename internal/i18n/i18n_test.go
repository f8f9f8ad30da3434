package i18n_test

import (
	"testing"

	"velora/internal/i18n"
)

func TestTParamSubstitution(t *testing.T) {
	got := i18n.T("en", "checkout.greeting", map[string]any{"name": "Sara", "orderId": "ORD-7"})
	want := "Hello Sara, your order ORD-7 is ready"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestTFallsBackToDefaultThenKey(t *testing.T) {
	// Key present in en but (hypothetically) missing in the active language
	// still resolves via the default dictionary.
	if got := i18n.T("fr", "cart.empty", nil); got != "Votre panier est vide" {
		t.Fatalf("fr lookup broken: %q", got)
	}

	// Unknown language falls back to the default dictionary.
	if got := i18n.T("de", "cart.empty", nil); got != "Your cart is empty" {
		t.Fatalf("default fallback broken: %q", got)
	}

	// Completely unknown key returns the key itself.
	if got := i18n.T("en", "no.such.key", nil); got != "no.such.key" {
		t.Fatalf("raw key fallback broken: %q", got)
	}
}

func TestTRepeatedPlaceholders(t *testing.T) {
	got := i18n.T("en", "tryon.cap_reached", map[string]any{"cap": 5})
	if got != "You have used all 5 try-ons for today. Come back tomorrow!" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveLang(t *testing.T) {
	cases := []struct {
		persisted, accept, want string
	}{
		{"fr", "", "fr"},                          // persisted wins
		{"", "ar-MA,fr;q=0.8", "ar"},              // browser tag matched
		{"", "de-DE,de;q=0.9", "en"},              // unsupported -> default
		{"xx", "fr-FR;q=0.9, en;q=0.8", "fr"},     // bad persisted ignored
		{"", "", "en"},                            // nothing known
	}
	for _, c := range cases {
		if got := i18n.ResolveLang(c.persisted, c.accept); got != c.want {
			t.Fatalf("ResolveLang(%q,%q)=%q want %q", c.persisted, c.accept, got, c.want)
		}
	}
}
