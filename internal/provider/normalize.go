package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/lukman83/pricecompare/internal/models"
	"github.com/lukman83/pricecompare/internal/price"
)

// priceUnavailable is shown when a provider omits the price; it parses to 0.
const priceUnavailable = "Price unavailable"

// newOffer starts an offer with its identity and price fields set.
// PriceNumeric is derived here and nowhere else.
func newOffer(providerName, nativeID, fallbackKey, displayPrice, currency string) models.Offer {
	return models.Offer{
		ID:             offerID(providerName, nativeID, fallbackKey),
		Price:          displayPrice,
		PriceNumeric:   price.Parse(displayPrice),
		Currency:       currency,
		SourceProvider: providerName,
	}
}

// offerID builds "<provider>-<native id>". Items without a native id get a
// name-based UUID of fallbackKey so the id is stable across runs.
func offerID(providerName, nativeID, fallbackKey string) string {
	if nativeID == "" {
		nativeID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(fallbackKey)).String()
	}
	return providerName + "-" + nativeID
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ratingLabel renders a star rating as "4.5/5"; zero means unrated.
func ratingLabel(r float64) *string {
	if r <= 0 {
		return nil
	}
	s := strconv.FormatFloat(r, 'f', -1, 64) + "/5"
	return &s
}

// discountLabel returns "N% off" when original is above current.
func discountLabel(current, original string) *string {
	cur, orig := price.Parse(current), price.Parse(original)
	if cur <= 0 || orig <= cur {
		return nil
	}
	s := fmt.Sprintf("%d%% off", int(math.Round((1-cur/orig)*100)))
	return &s
}

// withSymbol prefixes bare numbers with a currency symbol and leaves
// already formatted prices alone.
func withSymbol(symbol, amount string) string {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return ""
	}
	if c := amount[0]; c >= '0' && c <= '9' {
		return symbol + amount
	}
	return amount
}

func formatAmount(symbol string, v float64) string {
	return symbol + strconv.FormatFloat(v, 'f', -1, 64)
}

var knownFavicons = []struct {
	match, url string
}{
	{"amazon", "https://www.amazon.com/favicon.ico"},
	{"walmart", "https://www.walmart.com/favicon.ico"},
	{"ebay", "https://www.ebay.com/favicon.ico"},
	{"flipkart", "https://www.flipkart.com/favicon.ico"},
	{"best buy", "https://www.bestbuy.com/favicon.ico"},
	{"target", "https://www.target.com/favicon.ico"},
	{"costco", "https://www.costco.com/favicon.ico"},
	{"newegg", "https://www.newegg.com/favicon.ico"},
}

// faviconFor derives a store icon from the registrable domain of the page
// URL, falling back to a few well-known store names.
func faviconFor(storeName, pageURL string) string {
	if u, err := url.Parse(pageURL); err == nil && u.Hostname() != "" {
		host := u.Hostname()
		if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil && !isAggregator(domain) {
			return "https://www." + domain + "/favicon.ico"
		}
	}
	store := strings.ToLower(storeName)
	for _, f := range knownFavicons {
		if strings.Contains(store, f.match) {
			return f.url
		}
	}
	return "https://www.google.com/favicon.ico"
}

// isAggregator reports domains that redirect to the real store, whose icon
// would be misleading.
func isAggregator(domain string) bool {
	switch domain {
	case "google.com", "serpapi.com", "rapidapi.com":
		return true
	}
	return strings.HasPrefix(domain, "google.")
}

// flexString accepts a JSON string, number or null. Providers are not
// consistent about quoting prices and ids.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

func (f flexString) String() string { return string(f) }

// Float parses the value as a plain number, returning 0 when it is not one.
func (f flexString) Float() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
	if err != nil {
		return 0
	}
	return v
}
