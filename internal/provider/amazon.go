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
	amazonHost     = "real-time-amazon-data.p.rapidapi.com"
	amazonEndpoint = "https://" + amazonHost + "/search"
)

// Amazon searches the country's Amazon marketplace through RapidAPI.
type Amazon struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewAmazon(client *http.Client, rapidAPIKey string) *Amazon {
	return &Amazon{client: client, apiKey: rapidAPIKey, baseURL: amazonEndpoint}
}

func (a *Amazon) Name() string { return "amazon" }

type amazonResponse struct {
	Status string `json:"status"`
	Data   struct {
		Products []amazonProduct `json:"products"`
	} `json:"data"`
}

type amazonProduct struct {
	ASIN                 string     `json:"asin"`
	ProductTitle         string     `json:"product_title"`
	ProductURL           string     `json:"product_url"`
	ProductPrice         flexString `json:"product_price"`
	ProductOriginalPrice flexString `json:"product_original_price"`
	ProductStarRating    flexString `json:"product_star_rating"`
	ProductNumRatings    int        `json:"product_num_ratings"`
	ProductPhoto         string     `json:"product_photo"`
	IsPrime              bool       `json:"is_prime"`
}

func (a *Amazon) Search(ctx context.Context, query string, country catalog.Country) ([]models.Offer, error) {
	if a.apiKey == "" {
		slog.Debug("amazon not configured, skipping")
		return nil, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")
	q.Set("country", country.AmazonMarketplace)
	q.Set("sort_by", "RELEVANCE")
	q.Set("product_condition", "NEW")

	var resp amazonResponse
	if err := httputil.GetJSON(ctx, a.client, a.baseURL+"?"+q.Encode(), httputil.RapidAPIHeaders(a.apiKey, amazonHost), &resp); err != nil {
		return nil, fmt.Errorf("amazon %s: %w", country.Code, err)
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("amazon %s: status %q", country.Code, resp.Status)
	}

	offers := make([]models.Offer, 0, len(resp.Data.Products))
	for _, item := range resp.Data.Products {
		offers = append(offers, normalizeAmazon(item, country))
	}
	return offers, nil
}

func normalizeAmazon(item amazonProduct, country catalog.Country) models.Offer {
	display := firstNonEmpty(item.ProductPrice.String(), priceUnavailable)
	nativeID := ""
	if item.ASIN != "" {
		nativeID = item.ASIN + "-" + country.Code
	}
	o := newOffer("amazon", nativeID, country.Code+"|"+item.ProductURL+"|"+item.ProductTitle, display, country.Currency)

	o.Title = optString(item.ProductTitle)
	o.PageURL = item.ProductURL
	orig := item.ProductOriginalPrice.String()
	o.OriginalPrice = optString(orig)
	o.OnSale = orig != ""
	if orig != "" {
		o.PercentOff = discountLabel(display, orig)
	}
	if item.IsPrime {
		o.Shipping = "Prime FREE Delivery"
	} else {
		o.Shipping = "Standard Shipping"
	}
	o.ReturnsPolicy = "Amazon Easy Returns"
	o.Condition = "NEW"
	o.StoreName = "Amazon " + country.AmazonMarketplace
	o.StoreRating = ratingLabel(item.ProductStarRating.Float())
	o.StoreReviewCount = max(item.ProductNumRatings, 0)
	o.StoreFavicon = faviconFor(o.StoreName, item.ProductURL)
	o.ImageURL = item.ProductPhoto
	prime := item.IsPrime
	o.IsPrime = &prime
	return o
}
