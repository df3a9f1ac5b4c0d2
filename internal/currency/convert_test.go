package currency

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestToReference(t *testing.T) {
	snap := NewSnapshot(map[string]float64{"USD": 0.012, "EUR": 0, "GBP": -1}, time.Now(), "test", false)

	tests := []struct {
		name   string
		amount float64
		source string
		snap   *Snapshot
		want   float64
	}{
		{"snapshot rate", 100, "USD", snap, 100 / 0.012},
		{"reference passthrough", 12345.67, "INR", snap, 12345.67},
		{"reference passthrough ignores sign", -5, "INR", snap, -5},
		{"lowercase code", 100, "usd", snap, 100 / 0.012},
		{"zero amount", 0, "USD", snap, 0},
		{"negative amount", -10, "USD", snap, 0},
		{"zero rate falls back to static", 110, "EUR", snap, 110 / 0.0110},
		{"negative rate falls back to static", 95, "GBP", snap, 95 / 0.0095},
		{"missing rate falls back to static", 185, "JPY", snap, 185 / 1.85},
		{"nil snapshot uses static", 100, "AED", nil, 100 / 0.0437},
		{"unknown currency unconverted", 42, "XYZ", snap, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToReference(tt.amount, tt.source, tt.snap); !approx(got, tt.want) {
				t.Errorf("ToReference(%v, %q) = %v, want %v", tt.amount, tt.source, got, tt.want)
			}
		})
	}
}

func TestToReference_AnySnapshotForReferenceCurrency(t *testing.T) {
	for _, snap := range []*Snapshot{nil, FallbackSnapshot(time.Now()), NewSnapshot(nil, time.Now(), "empty", false)} {
		if got := ToReference(999.5, Reference, snap); got != 999.5 {
			t.Errorf("ToReference(999.5, %s) = %v", Reference, got)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(8333.333333); got != 8333.33 {
		t.Errorf("Round2 = %v", got)
	}
	if got := Round2(0.125); got != 0.13 {
		t.Errorf("Round2(0.125) = %v", got)
	}
}

func TestSnapshot(t *testing.T) {
	snap := NewSnapshot(map[string]float64{"usd": 0.012}, time.Unix(0, 0), "test", false)
	if snap.Rate("USD") != 0.012 {
		t.Errorf("Rate(USD) = %v", snap.Rate("USD"))
	}
	if snap.Rate(Reference) != 1 {
		t.Errorf("reference rate should default to 1")
	}
	codes := snap.Codes()
	if len(codes) != 2 || codes[0] != "INR" || codes[1] != "USD" {
		t.Errorf("Codes() = %v", codes)
	}

	rates := snap.Rates()
	rates["USD"] = 99
	if snap.Rate("USD") != 0.012 {
		t.Error("Rates() must return a copy")
	}

	var nilSnap *Snapshot
	if nilSnap.Rate("USD") != 0 {
		t.Error("nil snapshot should report zero rate")
	}
}

func TestFallbackSnapshot(t *testing.T) {
	snap := FallbackSnapshot(time.Now())
	if !snap.Degraded {
		t.Error("fallback snapshot must be degraded")
	}
	if snap.Rate("JPY") != 1.78 {
		t.Errorf("JPY = %v", snap.Rate("JPY"))
	}
}

func TestSnapshot_MarshalJSON(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	data, err := json.Marshal(NewSnapshot(map[string]float64{"usd": 0.012}, at, "freecurrencyapi", false))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"base":"INR","source":"freecurrencyapi","degraded":false,"fetched_at":"2026-01-02T03:04:05Z","rates":{"INR":1,"USD":0.012}}`
	if string(data) != want {
		t.Errorf("got  %s\nwant %s", data, want)
	}
}
