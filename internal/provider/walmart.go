package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/httputil"
	"github.com/lukman83/pricecompare/internal/models"
)

const (
	walmartHost     = "walmart-data.p.rapidapi.com"
	walmartEndpoint = "https://" + walmartHost + "/walmart-search.php"
)

// Walmart searches walmart.com through RapidAPI. US only.
type Walmart struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewWalmart(client *http.Client, rapidAPIKey string) *Walmart {
	return &Walmart{client: client, apiKey: rapidAPIKey, baseURL: walmartEndpoint}
}

func (w *Walmart) Name() string { return "walmart" }

type walmartResponse struct {
	Products []walmartItem `json:"products"`
	Items    []walmartItem `json:"items"`
}

type walmartItem struct {
	ID              flexString `json:"id"`
	UsItemID        flexString `json:"usItemId"`
	Title           string     `json:"title"`
	Name            string     `json:"name"`
	Price           flexString `json:"price"`
	WasPrice        flexString `json:"wasPrice"`
	Savings         flexString `json:"savings"`
	URL             string     `json:"url"`
	ProductPageURL  string     `json:"productPageUrl"`
	Image           string     `json:"image"`
	Rating          flexString `json:"rating"`
	NumReviews      int        `json:"numReviews"`
	NumberOfReviews int        `json:"numberOfReviews"`
	Shipping        flexString `json:"shipping"`
	PriceInfo       *struct {
		CurrentPrice flexString `json:"currentPrice"`
		WasPrice     flexString `json:"wasPrice"`
	} `json:"priceInfo"`
}

func (w *Walmart) Search(ctx context.Context, query string, country catalog.Country) ([]models.Offer, error) {
	if w.apiKey == "" || country.Code != "us" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")

	var resp walmartResponse
	if err := httputil.GetJSON(ctx, w.client, w.baseURL+"?"+q.Encode(), httputil.RapidAPIHeaders(w.apiKey, walmartHost), &resp); err != nil {
		return nil, fmt.Errorf("walmart: %w", err)
	}

	items := resp.Products
	if len(items) == 0 {
		items = resp.Items
	}
	slog.Debug("walmart results", "count", len(items))

	offers := make([]models.Offer, 0, len(items))
	for _, item := range items {
		offers = append(offers, normalizeWalmart(item, country))
	}
	return offers, nil
}

func normalizeWalmart(item walmartItem, country catalog.Country) models.Offer {
	var current, was string
	if item.PriceInfo != nil {
		current, was = item.PriceInfo.CurrentPrice.String(), item.PriceInfo.WasPrice.String()
	}
	display := firstNonEmpty(withSymbol(country.CurrencySymbol, item.Price.String()), withSymbol(country.CurrencySymbol, current), priceUnavailable)
	was = firstNonEmpty(withSymbol(country.CurrencySymbol, item.WasPrice.String()), withSymbol(country.CurrencySymbol, was))

	nativeID := firstNonEmpty(item.ID.String(), item.UsItemID.String())
	title := firstNonEmpty(item.Title, item.Name)
	page := firstNonEmpty(item.URL, item.ProductPageURL)
	if page == "" && item.UsItemID != "" {
		page = "https://www.walmart.com/ip/" + item.UsItemID.String()
	}

	o := newOffer("walmart", nativeID, page+"|"+title, display, country.Currency)
	o.Title = optString(title)
	o.PageURL = page
	o.OriginalPrice = optString(was)
	o.OnSale = was != ""
	o.PercentOff = optString(item.Savings.String())
	if o.PercentOff == nil && was != "" {
		o.PercentOff = discountLabel(display, was)
	}
	o.Shipping = firstNonEmpty(item.Shipping.String(), "Free Shipping on orders $35+")
	o.ReturnsPolicy = "Free 90-day returns"
	o.Condition = "NEW"
	o.StoreName = "Walmart"
	o.StoreRating = ratingLabel(item.Rating.Float())
	o.StoreReviewCount = max(item.NumReviews, item.NumberOfReviews, 0)
	o.StoreFavicon = "https://www.walmart.com/favicon.ico"
	o.ImageURL = item.Image
	return o
}
