package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/httputil"
	"github.com/lukman83/pricecompare/internal/models"
)

const serpAPIEndpoint = "https://serpapi.com/search.json"

// SerpAPI searches Google Shopping through serpapi.com. It is the primary
// provider: broadest retailer coverage and real per-country results.
type SerpAPI struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewSerpAPI(client *http.Client, apiKey string) *SerpAPI {
	return &SerpAPI{client: client, apiKey: apiKey, baseURL: serpAPIEndpoint}
}

func (s *SerpAPI) Name() string { return "serpapi" }

type shoppingResponse struct {
	Error           string           `json:"error"`
	ShoppingResults []shoppingResult `json:"shopping_results"`
}

type shoppingResult struct {
	Position       int        `json:"position"`
	Title          string     `json:"title"`
	Link           string     `json:"link"`
	ProductLink    string     `json:"product_link"`
	ProductID      flexString `json:"product_id"`
	Source         string     `json:"source"`
	SourceIcon     string     `json:"source_icon"`
	Price          string     `json:"price"`
	ExtractedPrice float64    `json:"extracted_price"`
	OldPrice       string     `json:"old_price"`
	Delivery       string     `json:"delivery"`
	Shipping       flexString `json:"shipping"`
	Rating         float64    `json:"rating"`
	Reviews        int        `json:"reviews"`
	Thumbnail      string     `json:"thumbnail"`
	Merchant       *struct {
		Name string `json:"name"`
	} `json:"merchant"`
}

func (s *SerpAPI) Search(ctx context.Context, query string, country catalog.Country) ([]models.Offer, error) {
	if s.apiKey == "" {
		slog.Debug("serpapi not configured, skipping")
		return nil, nil
	}

	q := url.Values{}
	q.Set("engine", "google_shopping")
	q.Set("q", query)
	q.Set("gl", country.ShoppingGL)
	q.Set("hl", country.ShoppingHL)
	if country.ShoppingLocation != "" {
		q.Set("location", country.ShoppingLocation)
	}
	q.Set("api_key", s.apiKey)

	var resp shoppingResponse
	if err := httputil.GetJSON(ctx, s.client, s.baseURL+"?"+q.Encode(), httputil.JSONHeaders(), &resp); err != nil {
		return nil, fmt.Errorf("serpapi %s: %w", country.Code, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("serpapi %s: %s", country.Code, resp.Error)
	}

	offers := make([]models.Offer, 0, len(resp.ShoppingResults))
	for _, item := range resp.ShoppingResults {
		offers = append(offers, normalizeShopping(item, country))
	}
	return offers, nil
}

func normalizeShopping(item shoppingResult, country catalog.Country) models.Offer {
	display := item.Price
	if display == "" && item.ExtractedPrice > 0 {
		display = formatAmount(country.CurrencySymbol, item.ExtractedPrice)
	}
	if display == "" {
		display = priceUnavailable
	}

	merchant := ""
	if item.Merchant != nil {
		merchant = item.Merchant.Name
	}
	store := firstNonEmpty(item.Source, merchant, "Online Store")
	page := firstNonEmpty(item.Link, item.ProductLink, "#")

	nativeID := ""
	if item.ProductID != "" {
		nativeID = country.Code + "-" + item.ProductID.String()
	}
	o := newOffer("serpapi", nativeID, country.Code+"|"+page+"|"+item.Title+"|"+strconv.Itoa(item.Position), display, country.Currency)

	o.Title = optString(item.Title)
	o.PageURL = page
	o.OriginalPrice = optString(item.OldPrice)
	o.OnSale = item.OldPrice != ""
	if item.OldPrice != "" {
		o.PercentOff = discountLabel(display, item.OldPrice)
	}
	o.Shipping = firstNonEmpty(item.Delivery, item.Shipping.String(), "See website for shipping")
	o.ReturnsPolicy = "See store policy"
	o.Condition = "NEW"
	o.StoreName = store
	o.StoreRating = ratingLabel(item.Rating)
	o.StoreReviewCount = max(item.Reviews, 0)
	o.StoreFavicon = firstNonEmpty(item.SourceIcon, faviconFor(store, page))
	o.ImageURL = item.Thumbnail
	return o
}
