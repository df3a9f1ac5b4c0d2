package models

import "time"

// Offer is one purchasable listing in the native currency of the country it
// was searched in. PriceNumeric is derived from Price when the offer is built
// and never changed afterwards.
type Offer struct {
	ID               string  `json:"id"`
	Title            *string `json:"title"`
	PageURL          string  `json:"page_url"`
	Price            string  `json:"price"`
	PriceNumeric     float64 `json:"price_numeric"`
	PriceReference   float64 `json:"price_reference,omitempty"`
	Currency         string  `json:"currency"`
	OriginalPrice    *string `json:"original_price"`
	OnSale           bool    `json:"on_sale"`
	PercentOff       *string `json:"percent_off"`
	Shipping         string  `json:"shipping"`
	ReturnsPolicy    string  `json:"returns_policy"`
	Condition        string  `json:"condition"`
	StoreName        string  `json:"store_name"`
	StoreRating      *string `json:"store_rating"`
	StoreReviewCount int     `json:"store_review_count"`
	StoreFavicon     string  `json:"store_favicon,omitempty"`
	Seller           string  `json:"seller,omitempty"`
	ImageURL         string  `json:"image_url,omitempty"`
	SourceProvider   string  `json:"source_provider"`
	IsPrime          *bool   `json:"is_prime,omitempty"`
}

// TitleText returns the title or "" when the provider gave none.
func (o Offer) TitleText() string {
	if o.Title == nil {
		return ""
	}
	return *o.Title
}

// ValidationItem is what an external classifier sees of an offer.
type ValidationItem struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// Verdict is a classifier's opinion about a single ValidationItem.
type Verdict struct {
	Valid      bool    `json:"valid"`
	Reason     string  `json:"reason,omitempty"`
	Confidence float64 `json:"confidence"`
}

// SearchStats counts offers surviving each reconciliation stage.
type SearchStats struct {
	Raw       int `json:"raw"`
	Filtered  int `json:"filtered"`
	Validated int `json:"validated"`
	Returned  int `json:"returned"`
}

// CountryResult is the outcome of one country-scoped search.
type CountryResult struct {
	Country           string      `json:"country"`
	CountryName       string      `json:"country_name"`
	Currency          string      `json:"currency"`
	Query             string      `json:"query"`
	Offers            []Offer     `json:"offers"`
	SourcesUsed       []string    `json:"sources_used"`
	Stats             SearchStats `json:"stats"`
	Cheapest          *Offer      `json:"cheapest,omitempty"`
	CheapestReference float64     `json:"cheapest_reference,omitempty"`
	Error             string      `json:"error,omitempty"`
	SearchedAt        time.Time   `json:"searched_at"`
}

// Analysis summarises a multi-country comparison in the reference currency.
type Analysis struct {
	CheapestCountry      string  `json:"cheapest_country"`
	CheapestPrice        float64 `json:"cheapest_price"`
	MostExpensiveCountry string  `json:"most_expensive_country"`
	MostExpensivePrice   float64 `json:"most_expensive_price"`
	Savings              float64 `json:"savings"`
	SavingsPercent       float64 `json:"savings_percent"`
	HomeCountry          string  `json:"home_country,omitempty"`
	HomePrice            float64 `json:"home_price,omitempty"`
	HomeSavings          float64 `json:"home_savings,omitempty"`
	CountriesWithOffers  int     `json:"countries_with_offers"`
}

// Comparison is the result of searching one query across several countries.
type Comparison struct {
	Query             string          `json:"query"`
	ReferenceCurrency string          `json:"reference_currency"`
	RatesDegraded     bool            `json:"rates_degraded"`
	RatesSource       string          `json:"rates_source"`
	Results           []CountryResult `json:"results"`
	Analysis          *Analysis       `json:"analysis,omitempty"`
}
