package currency

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lukman83/pricecompare/internal/httputil"
)

const freeCurrencyEndpoint = "https://api.freecurrencyapi.com/v1/latest"

// FreeCurrencyClient fetches rates from freecurrencyapi.com with the
// reference currency as base.
type FreeCurrencyClient struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewFreeCurrencyClient returns nil when apiKey is empty so callers can
// hand the result straight to NewCache.
func NewFreeCurrencyClient(client *http.Client, apiKey string) Fetcher {
	if apiKey == "" {
		return nil
	}
	return &FreeCurrencyClient{client: client, apiKey: apiKey, baseURL: freeCurrencyEndpoint}
}

func (f *FreeCurrencyClient) Name() string { return "freecurrencyapi" }

type freeCurrencyResponse struct {
	Data map[string]float64 `json:"data"`
}

func (f *FreeCurrencyClient) Fetch(ctx context.Context) (map[string]float64, error) {
	q := url.Values{}
	q.Set("apikey", f.apiKey)
	q.Set("base_currency", Reference)

	var resp freeCurrencyResponse
	if err := httputil.GetJSON(ctx, f.client, f.baseURL+"?"+q.Encode(), httputil.JSONHeaders(), &resp); err != nil {
		return nil, fmt.Errorf("freecurrencyapi: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("freecurrencyapi: empty rate table")
	}
	return resp.Data, nil
}
