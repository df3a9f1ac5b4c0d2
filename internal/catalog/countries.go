// Package catalog holds the static per-country configuration: currency,
// plausibility thresholds, provider locale parameters and trusted retailers.
package catalog

import "strings"

// DefaultCountry is used whenever a caller passes an unsupported code.
const DefaultCountry = "us"

// DefaultMinPrice applies to countries without an explicit threshold.
const DefaultMinPrice = 100

// Retailer is an allow-listed store for one country.
type Retailer struct {
	Name    string
	Domain  string
	Aliases []string
}

// Country is the immutable configuration of one supported market.
type Country struct {
	Code           string
	Name           string
	Flag           string
	Currency       string
	CurrencySymbol string
	Lat            float64
	Lng            float64

	// MinPrice is the lowest plausible price for a real product in local
	// currency. Cheaper listings are almost always accessories.
	MinPrice  float64
	Retailers []Retailer

	// Google Shopping locale parameters.
	ShoppingGL       string
	ShoppingHL       string
	ShoppingLocation string

	// AmazonMarketplace is the marketplace code used by the Amazon search API.
	AmazonMarketplace string
}

var countries = []Country{
	{
		Code: "in", Name: "India", Flag: "🇮🇳", Currency: "INR", CurrencySymbol: "₹",
		Lat: 20.5937, Lng: 78.9629, MinPrice: 5000, Retailers: retailersIN,
		ShoppingGL: "in", ShoppingHL: "en", ShoppingLocation: "India", AmazonMarketplace: "IN",
	},
	{
		Code: "us", Name: "United States", Flag: "🇺🇸", Currency: "USD", CurrencySymbol: "$",
		Lat: 37.0902, Lng: -95.7129, MinPrice: 100, Retailers: retailersUS,
		ShoppingGL: "us", ShoppingHL: "en", ShoppingLocation: "United States", AmazonMarketplace: "US",
	},
	{
		Code: "gb", Name: "United Kingdom", Flag: "🇬🇧", Currency: "GBP", CurrencySymbol: "£",
		Lat: 55.3781, Lng: -3.436, MinPrice: 80, Retailers: retailersGB,
		ShoppingGL: "uk", ShoppingHL: "en", ShoppingLocation: "United Kingdom", AmazonMarketplace: "UK",
	},
	{
		Code: "de", Name: "Germany", Flag: "🇩🇪", Currency: "EUR", CurrencySymbol: "€",
		Lat: 51.1657, Lng: 10.4515, MinPrice: 100, Retailers: retailersDE,
		ShoppingGL: "de", ShoppingHL: "de", ShoppingLocation: "Germany", AmazonMarketplace: "DE",
	},
	{
		Code: "au", Name: "Australia", Flag: "🇦🇺", Currency: "AUD", CurrencySymbol: "A$",
		Lat: -25.2744, Lng: 133.7751, MinPrice: 150, Retailers: retailersAU,
		ShoppingGL: "au", ShoppingHL: "en", ShoppingLocation: "Australia", AmazonMarketplace: "AU",
	},
	{
		Code: "ca", Name: "Canada", Flag: "🇨🇦", Currency: "CAD", CurrencySymbol: "C$",
		Lat: 56.1304, Lng: -106.3468, MinPrice: 150, Retailers: retailersCA,
		ShoppingGL: "ca", ShoppingHL: "en", ShoppingLocation: "Canada", AmazonMarketplace: "CA",
	},
	{
		Code: "jp", Name: "Japan", Flag: "🇯🇵", Currency: "JPY", CurrencySymbol: "¥",
		Lat: 36.2048, Lng: 138.2529, MinPrice: 15000, Retailers: retailersJP,
		ShoppingGL: "jp", ShoppingHL: "ja", ShoppingLocation: "Japan", AmazonMarketplace: "JP",
	},
	{
		Code: "sg", Name: "Singapore", Flag: "🇸🇬", Currency: "SGD", CurrencySymbol: "S$",
		Lat: 1.3521, Lng: 103.8198, MinPrice: 150, Retailers: retailersSG,
		ShoppingGL: "sg", ShoppingHL: "en", ShoppingLocation: "Singapore", AmazonMarketplace: "SG",
	},
	{
		Code: "ae", Name: "UAE", Flag: "🇦🇪", Currency: "AED", CurrencySymbol: "د.إ",
		Lat: 23.4241, Lng: 53.8478, MinPrice: 400, Retailers: retailersAE,
		ShoppingGL: "ae", ShoppingHL: "en", ShoppingLocation: "United Arab Emirates", AmazonMarketplace: "AE",
	},
	{
		Code: "fr", Name: "France", Flag: "🇫🇷", Currency: "EUR", CurrencySymbol: "€",
		Lat: 46.2276, Lng: 2.2137, MinPrice: 100, Retailers: retailersFR,
		ShoppingGL: "fr", ShoppingHL: "fr", ShoppingLocation: "France", AmazonMarketplace: "FR",
	},
}

var byCode = func() map[string]Country {
	m := make(map[string]Country, len(countries))
	for _, c := range countries {
		m[c.Code] = c
	}
	return m
}()

// All returns every supported country in display order.
func All() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// Codes returns the supported country codes in display order.
func Codes() []string {
	codes := make([]string, len(countries))
	for i, c := range countries {
		codes[i] = c.Code
	}
	return codes
}

// Lookup finds a country by its (case-insensitive) code.
func Lookup(code string) (Country, bool) {
	c, ok := byCode[normalizeCode(code)]
	return c, ok
}

// Resolve is Lookup with a fallback to DefaultCountry.
func Resolve(code string) Country {
	if c, ok := Lookup(code); ok {
		return c
	}
	return byCode[DefaultCountry]
}

// MinPriceFor returns the plausibility threshold for a country code.
func MinPriceFor(code string) float64 {
	if c, ok := Lookup(code); ok && c.MinPrice > 0 {
		return c.MinPrice
	}
	return DefaultMinPrice
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Summary is the public view of a country used by the CLI and tool output.
type Summary struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Flag      string   `json:"flag"`
	Currency  string   `json:"currency"`
	Symbol    string   `json:"currency_symbol"`
	MinPrice  float64  `json:"min_price"`
	Retailers []string `json:"retailers"`
}

// Summaries describes every supported country in display order.
func Summaries() []Summary {
	out := make([]Summary, len(countries))
	for i, c := range countries {
		out[i] = Summary{
			Code:      c.Code,
			Name:      c.Name,
			Flag:      c.Flag,
			Currency:  c.Currency,
			Symbol:    c.CurrencySymbol,
			MinPrice:  c.MinPrice,
			Retailers: TrustedRetailerNames(c.Code),
		}
	}
	return out
}
