// Package currency converts canonical USD prices into display currencies
// using a static multiplier table, and formats amounts for display.
package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const Canonical = "USD"

// Static exchange rates against the canonical currency. These are authored
// constants, not live market data.
var rates = map[string]float64{
	"USD": 1,
	"EUR": 0.92,
	"MAD": 10.05,
}

func Supported(code string) bool {
	_, ok := rates[code]
	return ok
}

// Convert multiplies a canonical USD price by the selected currency's rate.
// Unknown codes fall back to the canonical rate of 1.
func Convert(usd float64, code string) float64 {
	r, ok := rates[code]
	if !ok {
		return usd
	}
	return usd * r
}

// Format renders an already-converted amount. USD and EUR use a symbol with
// two decimals and thousands grouping; MAD has no reliable locale formatting
// and is rendered as a rounded integer with a literal suffix.
func Format(amount float64, code string) string {
	switch code {
	case "USD":
		return "$" + group(amount)
	case "EUR":
		return "€" + group(amount)
	case "MAD":
		return strconv.Itoa(int(math.Round(amount))) + " MAD"
	default:
		return fmt.Sprintf("%.2f %s", amount, code)
	}
}

// group writes 1234567.5 as "1,234,567.50".
func group(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
		if len(whole) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(whole); i += 3 {
		b.WriteString(whole[i : i+3])
		if i+3 < len(whole) {
			b.WriteByte(',')
		}
	}
	b.WriteString(frac)
	return b.String()
}
