package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/httputil"
	"github.com/lukman83/pricecompare/internal/models"
)

const (
	ebayHost     = "real-time-ebay-data.p.rapidapi.com"
	ebayEndpoint = "https://" + ebayHost + "/search"
)

// EBay searches ebay.com listings through RapidAPI. US only. Every listing
// is attributed to the eBay store; the individual seller is kept apart.
type EBay struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewEBay(client *http.Client, rapidAPIKey string) *EBay {
	return &EBay{client: client, apiKey: rapidAPIKey, baseURL: ebayEndpoint}
}

func (e *EBay) Name() string { return "ebay" }

type ebayResponse struct {
	Data struct {
		Products []ebayItem `json:"products"`
	} `json:"data"`
	Products []ebayItem `json:"products"`
}

type ebayItem struct {
	ItemID        flexString `json:"item_id"`
	EPID          flexString `json:"epid"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	ItemWebURL    string     `json:"item_web_url"`
	Image         string     `json:"image"`
	Price         ebayPrice  `json:"price"`
	OriginalPrice flexString `json:"original_price"`
	Discount      flexString `json:"discount"`
	Returns       string     `json:"returns"`
	Condition     string     `json:"condition"`
	Shipping      *struct {
		Cost flexString `json:"cost"`
	} `json:"shipping"`
	Seller *struct {
		Username           string     `json:"username"`
		FeedbackScore      int        `json:"feedback_score"`
		FeedbackPercentage flexString `json:"feedback_percentage"`
	} `json:"seller"`
}

// ebayPrice is either {"value": 12.5} or a plain display string.
type ebayPrice struct {
	Value   string
	Display string
}

func (p *ebayPrice) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Value flexString `json:"value"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		p.Value = obj.Value.String()
		return nil
	}
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	p.Display = s.String()
	return nil
}

func (e *EBay) Search(ctx context.Context, query string, country catalog.Country) ([]models.Offer, error) {
	if e.apiKey == "" || country.Code != "us" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")
	q.Set("country", "us")

	var resp ebayResponse
	if err := httputil.GetJSON(ctx, e.client, e.baseURL+"?"+q.Encode(), httputil.RapidAPIHeaders(e.apiKey, ebayHost), &resp); err != nil {
		return nil, fmt.Errorf("ebay: %w", err)
	}

	items := resp.Data.Products
	if len(items) == 0 {
		items = resp.Products
	}
	offers := make([]models.Offer, 0, len(items))
	for _, item := range items {
		offers = append(offers, normalizeEBay(item, country))
	}
	return offers, nil
}

func normalizeEBay(item ebayItem, country catalog.Country) models.Offer {
	display := firstNonEmpty(withSymbol(country.CurrencySymbol, item.Price.Value), item.Price.Display, priceUnavailable)
	page := firstNonEmpty(item.URL, item.ItemWebURL)
	nativeID := firstNonEmpty(item.ItemID.String(), item.EPID.String())

	o := newOffer("ebay", nativeID, page+"|"+item.Title, display, country.Currency)
	o.Title = optString(item.Title)
	o.PageURL = page
	orig := item.OriginalPrice.String()
	o.OriginalPrice = optString(orig)
	o.OnSale = orig != ""
	o.PercentOff = optString(item.Discount.String())
	o.Shipping = "See shipping options"
	if item.Shipping != nil && item.Shipping.Cost != "" {
		o.Shipping = "Shipping: " + withSymbol(country.CurrencySymbol, item.Shipping.Cost.String())
	}
	o.ReturnsPolicy = firstNonEmpty(item.Returns, "eBay Money Back Guarantee")
	o.Condition = firstNonEmpty(item.Condition, "See listing")
	o.StoreName = "eBay"
	if item.Seller != nil {
		o.Seller = item.Seller.Username
		if item.Seller.FeedbackScore > 0 && item.Seller.FeedbackPercentage != "" {
			o.StoreRating = optString(item.Seller.FeedbackPercentage.String() + "%")
		}
		o.StoreReviewCount = max(item.Seller.FeedbackScore, 0)
	}
	o.StoreFavicon = "https://www.ebay.com/favicon.ico"
	o.ImageURL = item.Image
	return o
}
