package catalog

import "testing"

func TestIsTrusted(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		country string
		want    bool
	}{
		{"domain as store name", "Amazon.in", "in", true},
		{"display name", "Flipkart", "in", true},
		{"alias inside longer name", "Reliance Digital Store", "in", true},
		{"url with domain", "https://www.croma.com/apple-iphone/p/123", "in", true},
		{"truncated name inside alias", "flipk", "in", true},
		{"short fragment rejected", "fli", "in", false},
		{"untrusted store", "RandomShop", "in", false},
		{"empty input", "", "in", false},
		{"whitespace and case", "  BEST BUY  ", "us", true},
		{"japanese alias", "ヨドバシ.com", "jp", true},
		{"other country's retailer", "Flipkart", "us", false},
		{"uppercase country code", "Argos", "GB", true},
		{"unknown country fails closed", "anything", "zz", false},
		{"unknown country with trusted name", "Amazon", "zz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTrusted(tt.store, tt.country); got != tt.want {
				t.Errorf("IsTrusted(%q, %q) = %v, want %v", tt.store, tt.country, got, tt.want)
			}
		})
	}
}

func TestTrustedRetailerNames(t *testing.T) {
	names := TrustedRetailerNames("gb")
	if len(names) != 6 {
		t.Fatalf("expected 6 retailers for gb, got %d", len(names))
	}
	if names[0] != "Amazon UK" {
		t.Errorf("first retailer = %q, want Amazon UK", names[0])
	}
	if TrustedRetailerNames("zz") != nil {
		t.Error("expected nil names for unknown country")
	}
}

func TestTrustedDomains(t *testing.T) {
	domains := TrustedDomains("de")
	found := false
	for _, d := range domains {
		if d == "mediamarkt.de" {
			found = true
		}
	}
	if !found {
		t.Errorf("mediamarkt.de missing from %v", domains)
	}
	if TrustedDomains("zz") != nil {
		t.Error("expected nil domains for unknown country")
	}
}

func TestResolve(t *testing.T) {
	if c := Resolve("JP"); c.Code != "jp" || c.Currency != "JPY" {
		t.Errorf("Resolve(JP) = %s/%s", c.Code, c.Currency)
	}
	if c := Resolve("xx"); c.Code != DefaultCountry {
		t.Errorf("Resolve(xx) = %s, want %s", c.Code, DefaultCountry)
	}
}

func TestMinPriceFor(t *testing.T) {
	tests := map[string]float64{
		"in": 5000,
		"jp": 15000,
		"gb": 80,
		"ae": 400,
		"zz": DefaultMinPrice,
	}
	for code, want := range tests {
		if got := MinPriceFor(code); got != want {
			t.Errorf("MinPriceFor(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestCatalogCompleteness(t *testing.T) {
	codes := Codes()
	if len(codes) != 10 {
		t.Fatalf("expected 10 countries, got %d", len(codes))
	}
	for _, c := range All() {
		if c.Currency == "" || c.CurrencySymbol == "" {
			t.Errorf("%s: missing currency", c.Code)
		}
		if len(c.Retailers) == 0 {
			t.Errorf("%s: no trusted retailers", c.Code)
		}
		if c.ShoppingGL == "" || c.AmazonMarketplace == "" {
			t.Errorf("%s: missing provider locale", c.Code)
		}
	}
}

func TestSummaries(t *testing.T) {
	s := Summaries()
	if len(s) != len(Codes()) {
		t.Fatalf("got %d summaries", len(s))
	}
	for _, c := range s {
		if c.Currency == "" || c.MinPrice <= 0 || len(c.Retailers) == 0 {
			t.Errorf("incomplete summary %+v", c)
		}
	}
}
