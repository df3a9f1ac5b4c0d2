// Package currency converts native prices into the reference currency and
// keeps a time-bounded cache of exchange rates.
package currency

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// Reference is the currency every offer is ranked in.
const Reference = "INR"

// staticRates are approximate units of each currency per one INR, used when
// a snapshot has no usable rate.
var staticRates = map[string]float64{
	"USD": 0.0119,
	"GBP": 0.0095,
	"EUR": 0.0110,
	"AUD": 0.0183,
	"CAD": 0.0165,
	"JPY": 1.85,
	"SGD": 0.0160,
	"AED": 0.0437,
}

// ToReference converts amount from source into the reference currency.
// Rates are units of source per one reference unit, so the result is
// amount / rate. Missing rates fall back to the static table and then to
// returning the amount unconverted.
func ToReference(amount float64, source string, snap *Snapshot) float64 {
	source = strings.ToUpper(strings.TrimSpace(source))
	if source == Reference {
		return amount
	}
	if amount <= 0 {
		return 0
	}

	rate := snap.Rate(source)
	if rate <= 0 {
		rate = staticRates[source]
	}
	if rate <= 0 {
		slog.Warn("no exchange rate, returning amount unconverted", "currency", source, "amount", amount)
		return amount
	}

	converted, _ := decimal.NewFromFloat(amount).Div(decimal.NewFromFloat(rate)).Float64()
	return converted
}

// Round2 rounds a reference amount to two decimal places for display.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
