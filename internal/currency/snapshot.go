package currency

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// fallbackRates seed a degraded snapshot when no fetch is possible.
var fallbackRates = map[string]float64{
	"INR": 1,
	"USD": 0.012,
	"GBP": 0.0095,
	"EUR": 0.011,
	"AUD": 0.018,
	"CAD": 0.016,
	"JPY": 1.78,
	"SGD": 0.016,
	"AED": 0.044,
}

// Snapshot is an immutable set of rates expressed as units of each
// currency per one unit of the reference currency.
type Snapshot struct {
	rates     map[string]float64
	FetchedAt time.Time
	Source    string
	Degraded  bool
}

// NewSnapshot copies rates into a new snapshot. Codes are upper-cased.
func NewSnapshot(rates map[string]float64, fetchedAt time.Time, source string, degraded bool) *Snapshot {
	m := make(map[string]float64, len(rates)+1)
	for code, r := range rates {
		m[strings.ToUpper(code)] = r
	}
	if _, ok := m[Reference]; !ok {
		m[Reference] = 1
	}
	return &Snapshot{rates: m, FetchedAt: fetchedAt, Source: source, Degraded: degraded}
}

// FallbackSnapshot builds the degraded snapshot from the built-in table.
func FallbackSnapshot(now time.Time) *Snapshot {
	return NewSnapshot(fallbackRates, now, "fallback", true)
}

// Rate returns the rate for code, or 0 when unknown. Safe on a nil snapshot.
func (s *Snapshot) Rate(code string) float64 {
	if s == nil {
		return 0
	}
	return s.rates[strings.ToUpper(code)]
}

// Rates returns a copy of all rates.
func (s *Snapshot) Rates() map[string]float64 {
	if s == nil {
		return nil
	}
	out := make(map[string]float64, len(s.rates))
	for k, v := range s.rates {
		out[k] = v
	}
	return out
}

// Codes returns the currency codes in the snapshot, sorted.
func (s *Snapshot) Codes() []string {
	if s == nil {
		return nil
	}
	codes := make([]string, 0, len(s.rates))
	for k := range s.rates {
		codes = append(codes, k)
	}
	sort.Strings(codes)
	return codes
}

// Age is how old the snapshot is at now.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

type snapshotJSON struct {
	Base      string             `json:"base"`
	Source    string             `json:"source"`
	Degraded  bool               `json:"degraded"`
	FetchedAt time.Time          `json:"fetched_at"`
	Rates     map[string]float64 `json:"rates"`
}

func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		Base:      Reference,
		Source:    s.Source,
		Degraded:  s.Degraded,
		FetchedAt: s.FetchedAt,
		Rates:     s.rates,
	})
}
