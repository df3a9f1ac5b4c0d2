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
	productSearchHost     = "real-time-product-search.p.rapidapi.com"
	productSearchEndpoint = "https://" + productSearchHost + "/search-v2"
)

// ProductSearch queries the RapidAPI real-time product search, which returns
// one best offer per product from many stores.
type ProductSearch struct {
	client  *http.Client
	apiKey  string
	baseURL string
	limit   int
}

func NewProductSearch(client *http.Client, rapidAPIKey string) *ProductSearch {
	return &ProductSearch{client: client, apiKey: rapidAPIKey, baseURL: productSearchEndpoint, limit: 8}
}

func (p *ProductSearch) Name() string { return "product-search" }

type productSearchResponse struct {
	Status string `json:"status"`
	Data   struct {
		Products []productSearchItem `json:"products"`
	} `json:"data"`
}

type productSearchItem struct {
	ProductID         flexString `json:"product_id"`
	ProductTitle      string     `json:"product_title"`
	ProductPageURL    string     `json:"product_page_url"`
	ProductPhotos     []string   `json:"product_photos"`
	TypicalPriceRange []string   `json:"typical_price_range"`
	Offer             struct {
		OfferPageURL     string     `json:"offer_page_url"`
		Price            flexString `json:"price"`
		OriginalPrice    flexString `json:"original_price"`
		OnSale           bool       `json:"on_sale"`
		PercentOff       flexString `json:"percent_off"`
		Shipping         string     `json:"shipping"`
		Returns          string     `json:"returns"`
		ProductCondition string     `json:"product_condition"`
		StoreName        string     `json:"store_name"`
		StoreRating      flexString `json:"store_rating"`
		StoreReviewCount int        `json:"store_review_count"`
		StoreFavicon     string     `json:"store_favicon"`
	} `json:"offer"`
}

func (p *ProductSearch) Search(ctx context.Context, query string, country catalog.Country) ([]models.Offer, error) {
	if p.apiKey == "" {
		slog.Debug("product-search not configured, skipping")
		return nil, nil
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("country", country.Code)
	q.Set("language", "en")
	q.Set("limit", fmt.Sprintf("%d", p.limit))
	q.Set("sort_by", "BEST_MATCH")
	q.Set("product_condition", "NEW")

	var resp productSearchResponse
	if err := httputil.GetJSON(ctx, p.client, p.baseURL+"?"+q.Encode(), httputil.RapidAPIHeaders(p.apiKey, productSearchHost), &resp); err != nil {
		return nil, fmt.Errorf("product-search %s: %w", country.Code, err)
	}

	offers := make([]models.Offer, 0, len(resp.Data.Products))
	for _, item := range resp.Data.Products {
		offers = append(offers, normalizeProductSearch(item, country))
	}
	return offers, nil
}

func normalizeProductSearch(item productSearchItem, country catalog.Country) models.Offer {
	typical := ""
	if len(item.TypicalPriceRange) > 0 {
		typical = item.TypicalPriceRange[0]
	}
	display := firstNonEmpty(item.Offer.Price.String(), typical, priceUnavailable)
	page := firstNonEmpty(item.Offer.OfferPageURL, item.ProductPageURL)
	store := firstNonEmpty(item.Offer.StoreName, "Unknown Store")

	o := newOffer("product-search", item.ProductID.String(), country.Code+"|"+page+"|"+item.ProductTitle, display, country.Currency)

	o.Title = optString(item.ProductTitle)
	o.PageURL = page
	o.OriginalPrice = optString(item.Offer.OriginalPrice.String())
	o.OnSale = item.Offer.OnSale
	o.PercentOff = optString(item.Offer.PercentOff.String())
	o.Shipping = firstNonEmpty(item.Offer.Shipping, "Check website")
	o.ReturnsPolicy = firstNonEmpty(item.Offer.Returns, "Check policy")
	o.Condition = firstNonEmpty(item.Offer.ProductCondition, "NEW")
	o.StoreName = store
	o.StoreRating = optString(item.Offer.StoreRating.String())
	o.StoreReviewCount = max(item.Offer.StoreReviewCount, 0)
	o.StoreFavicon = firstNonEmpty(item.Offer.StoreFavicon, faviconFor(store, page))
	if len(item.ProductPhotos) > 0 {
		o.ImageURL = item.ProductPhotos[0]
	}
	return o
}
