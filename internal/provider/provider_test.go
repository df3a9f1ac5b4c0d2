package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/models"
)

func country(t *testing.T, code string) catalog.Country {
	t.Helper()
	c, ok := catalog.Lookup(code)
	if !ok {
		t.Fatalf("unknown country %q", code)
	}
	return c
}

func TestSerpAPI_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("engine") != "google_shopping" || q.Get("q") != "Sony WH-1000XM5" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("gl") != "uk" || q.Get("hl") != "en" || q.Get("location") != "United Kingdom" {
			t.Errorf("unexpected locale %v", q)
		}
		if q.Get("api_key") != "serp-key" {
			t.Errorf("api_key = %q", q.Get("api_key"))
		}
		w.Write([]byte(`{"shopping_results":[
			{"position":1,"title":"Sony WH-1000XM5","link":"https://www.currys.co.uk/products/sony-123.html","product_id":"987","source":"Currys","price":"£279.00","extracted_price":279,"old_price":"£379.00","rating":4.7,"reviews":1520,"delivery":"Free delivery"},
			{"position":2,"title":"Sony WH-1000XM5 Black","product_link":"https://www.google.com/shopping/product/1","merchant":{"name":"Argos"},"extracted_price":299.99}
		]}`))
	}))
	defer srv.Close()

	s := NewSerpAPI(srv.Client(), "serp-key")
	s.baseURL = srv.URL

	offers, err := s.Search(context.Background(), "Sony WH-1000XM5", country(t, "gb"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(offers))
	}

	first := offers[0]
	if first.ID != "serpapi-gb-987" {
		t.Errorf("ID = %q", first.ID)
	}
	if first.Price != "£279.00" || first.PriceNumeric != 279 {
		t.Errorf("price = %q / %v", first.Price, first.PriceNumeric)
	}
	if first.Currency != "GBP" || first.StoreName != "Currys" {
		t.Errorf("currency/store = %s/%s", first.Currency, first.StoreName)
	}
	if !first.OnSale || first.PercentOff == nil || *first.PercentOff != "26% off" {
		t.Errorf("sale fields: onSale=%v percentOff=%v", first.OnSale, first.PercentOff)
	}
	if first.StoreRating == nil || *first.StoreRating != "4.7/5" || first.StoreReviewCount != 1520 {
		t.Errorf("rating = %v reviews = %d", first.StoreRating, first.StoreReviewCount)
	}
	if first.StoreFavicon != "https://www.currys.co.uk/favicon.ico" {
		t.Errorf("favicon = %q", first.StoreFavicon)
	}
	if first.Shipping != "Free delivery" {
		t.Errorf("shipping = %q", first.Shipping)
	}

	second := offers[1]
	if second.StoreName != "Argos" {
		t.Errorf("merchant fallback store = %q", second.StoreName)
	}
	if second.Price != "£299.99" || second.PriceNumeric != 299.99 {
		t.Errorf("extracted price fallback = %q / %v", second.Price, second.PriceNumeric)
	}
	if second.StoreRating != nil || second.StoreReviewCount != 0 {
		t.Error("absent rating should be nil and reviews 0")
	}
	if !strings.HasPrefix(second.ID, "serpapi-") {
		t.Errorf("synthesized ID = %q", second.ID)
	}
	if second.StoreFavicon != "https://www.google.com/favicon.ico" {
		t.Errorf("aggregator link favicon = %q", second.StoreFavicon)
	}
}

func TestSerpAPI_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Your account has run out of searches."}`))
	}))
	defer srv.Close()

	s := NewSerpAPI(srv.Client(), "k")
	s.baseURL = srv.URL
	if _, err := s.Search(context.Background(), "x", country(t, "us")); err == nil {
		t.Fatal("expected error for error field")
	}
}

func TestProviders_NoKeyMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	providers := []Provider{
		&SerpAPI{client: srv.Client(), baseURL: srv.URL},
		&Amazon{client: srv.Client(), baseURL: srv.URL},
		&ProductSearch{client: srv.Client(), baseURL: srv.URL},
		&Walmart{client: srv.Client(), baseURL: srv.URL},
		&EBay{client: srv.Client(), baseURL: srv.URL},
	}
	for _, p := range providers {
		offers, err := p.Search(context.Background(), "iphone", country(t, "us"))
		if err != nil || len(offers) != 0 {
			t.Errorf("%s: offers=%d err=%v", p.Name(), len(offers), err)
		}
	}
	if hits.Load() != 0 {
		t.Errorf("expected no requests, got %d", hits.Load())
	}
}

func TestAmazon_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-RapidAPI-Host") != amazonHost || r.Header.Get("X-RapidAPI-Key") != "rk" {
			t.Errorf("headers = %v", r.Header)
		}
		if r.URL.Query().Get("country") != "DE" {
			t.Errorf("country = %q", r.URL.Query().Get("country"))
		}
		w.Write([]byte(`{"status":"OK","data":{"products":[
			{"asin":"B0C1","product_title":"Apple iPhone 15 128GB","product_url":"https://www.amazon.de/dp/B0C1","product_price":"799,00 €","product_original_price":"949,00 €","product_star_rating":"4.6","product_num_ratings":812,"is_prime":true},
			{"asin":"B0C2","product_title":"Apple iPhone 15 Plus","product_url":"https://www.amazon.de/dp/B0C2","product_price":null}
		]}}`))
	}))
	defer srv.Close()

	a := NewAmazon(srv.Client(), "rk")
	a.baseURL = srv.URL

	offers, err := a.Search(context.Background(), "iphone 15", country(t, "de"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(offers))
	}

	o := offers[0]
	if o.ID != "amazon-B0C1-de" || o.StoreName != "Amazon DE" {
		t.Errorf("id/store = %s/%s", o.ID, o.StoreName)
	}
	if o.PriceNumeric != 799 || o.Currency != "EUR" {
		t.Errorf("price = %v %s", o.PriceNumeric, o.Currency)
	}
	if o.IsPrime == nil || !*o.IsPrime {
		t.Error("expected prime")
	}
	if o.StoreRating == nil || *o.StoreRating != "4.6/5" {
		t.Errorf("rating = %v", o.StoreRating)
	}
	if o.PercentOff == nil || *o.PercentOff != "16% off" {
		t.Errorf("percent off = %v", o.PercentOff)
	}
	if o.StoreFavicon != "https://www.amazon.de/favicon.ico" {
		t.Errorf("favicon = %q", o.StoreFavicon)
	}

	if offers[1].Price != priceUnavailable || offers[1].PriceNumeric != 0 {
		t.Errorf("missing price = %q / %v", offers[1].Price, offers[1].PriceNumeric)
	}
}

func TestAmazon_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ERROR","error":{"message":"bad"}}`))
	}))
	defer srv.Close()

	a := NewAmazon(srv.Client(), "rk")
	a.baseURL = srv.URL
	if _, err := a.Search(context.Background(), "x", country(t, "us")); err == nil {
		t.Fatal("expected error for non-OK status")
	}
}

func TestNormalizeProductSearch(t *testing.T) {
	var item productSearchItem
	raw := `{"product_id":12345,"product_title":"Galaxy S25","product_page_url":"https://www.google.com/shopping/product/12345",
		"typical_price_range":["$799","$899"],
		"offer":{"offer_page_url":"https://www.bestbuy.com/site/galaxy-s25","price":"$799.99","original_price":"$859.99","on_sale":true,"percent_off":"7%","store_name":"Best Buy","store_rating":4.5,"store_review_count":320}}`
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	o := normalizeProductSearch(item, country(t, "us"))
	if o.ID != "product-search-12345" {
		t.Errorf("ID = %q", o.ID)
	}
	if o.PriceNumeric != 799.99 || o.StoreName != "Best Buy" {
		t.Errorf("price/store = %v/%s", o.PriceNumeric, o.StoreName)
	}
	if o.StoreRating == nil || *o.StoreRating != "4.5" {
		t.Errorf("rating = %v", o.StoreRating)
	}
	if o.PageURL != "https://www.bestbuy.com/site/galaxy-s25" {
		t.Errorf("page = %q", o.PageURL)
	}
	if o.Shipping != "Check website" || o.Condition != "NEW" {
		t.Errorf("defaults: shipping=%q condition=%q", o.Shipping, o.Condition)
	}
}

func TestNormalizeProductSearch_TypicalPriceFallback(t *testing.T) {
	var item productSearchItem
	json.Unmarshal([]byte(`{"product_id":"p1","product_title":"X","typical_price_range":["$1,099","$1,299"],"offer":{}}`), &item)

	o := normalizeProductSearch(item, country(t, "us"))
	if o.Price != "$1,099" || o.PriceNumeric != 1099 {
		t.Errorf("price = %q / %v", o.Price, o.PriceNumeric)
	}
	if o.StoreName != "Unknown Store" {
		t.Errorf("store = %q", o.StoreName)
	}
}

func TestWalmart_OnlyUS(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"items":[{"usItemId":"5551","name":"PlayStation 5 Console","price":499,"wasPrice":"$549.00","rating":4.8,"numberOfReviews":2100}]}`))
	}))
	defer srv.Close()

	w := NewWalmart(srv.Client(), "rk")
	w.baseURL = srv.URL

	if offers, _ := w.Search(context.Background(), "ps5", country(t, "ca")); len(offers) != 0 {
		t.Errorf("expected no offers outside US, got %d", len(offers))
	}
	if hits.Load() != 0 {
		t.Fatal("walmart should not be called outside US")
	}

	offers, err := w.Search(context.Background(), "ps5", country(t, "us"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
	o := offers[0]
	if o.ID != "walmart-5551" || o.Price != "$499" || o.PriceNumeric != 499 {
		t.Errorf("offer = %s %q %v", o.ID, o.Price, o.PriceNumeric)
	}
	if o.PageURL != "https://www.walmart.com/ip/5551" {
		t.Errorf("page = %q", o.PageURL)
	}
	if o.PercentOff == nil || *o.PercentOff != "9% off" {
		t.Errorf("percent off = %v", o.PercentOff)
	}
	if o.StoreReviewCount != 2100 {
		t.Errorf("reviews = %d", o.StoreReviewCount)
	}
}

func TestNormalizeEBay(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantPrice string
		wantNum   float64
	}{
		{"object price", `{"item_id":"111","title":"Nintendo Switch OLED","url":"https://www.ebay.com/itm/111","price":{"value":289.5},"seller":{"username":"gamesrus","feedback_score":5400,"feedback_percentage":"99.8"}}`, "$289.5", 289.5},
		{"string price", `{"epid":"222","title":"Nintendo Switch OLED","item_web_url":"https://www.ebay.com/itm/222","price":"$299.99"}`, "$299.99", 299.99},
		{"missing price", `{"item_id":"333","title":"Nintendo Switch"}`, priceUnavailable, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item ebayItem
			if err := json.Unmarshal([]byte(tt.raw), &item); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			o := normalizeEBay(item, country(t, "us"))
			if o.Price != tt.wantPrice || o.PriceNumeric != tt.wantNum {
				t.Errorf("price = %q / %v, want %q / %v", o.Price, o.PriceNumeric, tt.wantPrice, tt.wantNum)
			}
			if o.StoreName != "eBay" {
				t.Errorf("store = %q", o.StoreName)
			}
		})
	}

	var item ebayItem
	json.Unmarshal([]byte(tests[0].raw), &item)
	o := normalizeEBay(item, country(t, "us"))
	if o.Seller != "gamesrus" || o.StoreReviewCount != 5400 {
		t.Errorf("seller = %q reviews = %d", o.Seller, o.StoreReviewCount)
	}
	if o.StoreRating == nil || *o.StoreRating != "99.8%" {
		t.Errorf("rating = %v", o.StoreRating)
	}
}

func TestOfferID_StableWithoutNativeID(t *testing.T) {
	a := offerID("serpapi", "", "us|https://example.com/p|Title")
	b := offerID("serpapi", "", "us|https://example.com/p|Title")
	c := offerID("serpapi", "", "us|https://example.com/q|Title")
	if a != b {
		t.Errorf("ids differ for same key: %s vs %s", a, b)
	}
	if a == c {
		t.Error("ids collide for different keys")
	}
	if got := offerID("ebay", "42", "ignored"); got != "ebay-42" {
		t.Errorf("native id = %q", got)
	}
}

func TestDiscountLabel(t *testing.T) {
	tests := []struct {
		current, original string
		want              string
	}{
		{"$75", "$100", "25% off"},
		{"1.234,56 €", "1.499,00 €", "18% off"},
		{"$100", "$90", ""},
		{"", "$90", ""},
	}
	for _, tt := range tests {
		got := discountLabel(tt.current, tt.original)
		if tt.want == "" {
			if got != nil {
				t.Errorf("discountLabel(%q, %q) = %q, want nil", tt.current, tt.original, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("discountLabel(%q, %q) = %v, want %q", tt.current, tt.original, got, tt.want)
		}
	}
}

func TestFaviconFor(t *testing.T) {
	tests := []struct {
		store, page, want string
	}{
		{"Argos", "https://www.argos.co.uk/product/123", "https://www.argos.co.uk/favicon.ico"},
		{"Best Buy", "https://www.google.com/shopping/product/1", "https://www.bestbuy.com/favicon.ico"},
		{"Tiny Shop", "", "https://www.google.com/favicon.ico"},
	}
	for _, tt := range tests {
		if got := faviconFor(tt.store, tt.page); got != tt.want {
			t.Errorf("faviconFor(%q, %q) = %q, want %q", tt.store, tt.page, got, tt.want)
		}
	}
}

type stubProvider struct{ name string }

func (s stubProvider) Name() string { return s.name }
func (s stubProvider) Search(context.Context, string, catalog.Country) ([]models.Offer, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(stubProvider{"serpapi"})
	r.Register(stubProvider{"amazon"})
	r.Register(stubProvider{"serpapi"})

	if got := r.List(); len(got) != 2 || got[0] != "serpapi" || got[1] != "amazon" {
		t.Errorf("List() = %v", got)
	}

	ordered, err := r.Ordered([]string{"amazon", "serpapi"})
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	if ordered[0].Name() != "amazon" || ordered[1].Name() != "serpapi" {
		t.Errorf("order = %s,%s", ordered[0].Name(), ordered[1].Name())
	}

	if _, err := r.Ordered([]string{"nope"}); err == nil {
		t.Error("expected error for unknown provider")
	}
	if all, _ := r.Ordered(nil); len(all) != 2 {
		t.Errorf("Ordered(nil) returned %d providers", len(all))
	}
}
