package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/currency"
	"github.com/lukman83/pricecompare/internal/models"
)

const (
	DefaultMaxConcurrent = 4
	DefaultHomeCountry   = "in"
)

// Comparer searches one query in several countries and ranks the countries
// by their cheapest offer in the reference currency.
type Comparer struct {
	searcher      *Searcher
	maxConcurrent int
	home          string
}

// NewComparer wraps searcher. maxConcurrent bounds how many countries are
// searched at once; home is the country savings are reported against.
func NewComparer(searcher *Searcher, maxConcurrent int, home string) *Comparer {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	home = strings.ToLower(strings.TrimSpace(home))
	if home == "" {
		home = DefaultHomeCountry
	}
	return &Comparer{searcher: searcher, maxConcurrent: maxConcurrent, home: home}
}

// Compare searches query in every country of codes (all countries when
// empty). A country that fails carries its error on its own result. Results
// are in the order requested.
func (c *Comparer) Compare(ctx context.Context, query string, codes []string) (*models.Comparison, error) {
	req, err := checkRequest(Request{Query: query})
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		codes = catalog.Codes()
	}

	snap, err := c.searcher.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Degraded {
		slog.Warn("comparing with fallback exchange rates", "source", snap.Source)
	}

	results := make([]models.CountryResult, len(codes))
	var done atomic.Int32
	var g errgroup.Group
	g.SetLimit(c.maxConcurrent)
	for i, raw := range codes {
		code := strings.ToLower(strings.TrimSpace(raw))
		g.Go(func() error {
			results[i] = c.searchCountry(ctx, req.Query, code, snap)
			ReportProgress(ctx, fmt.Sprintf("Searched %d/%d countries", done.Add(1), len(codes)))
			return nil
		})
	}
	_ = g.Wait()

	return &models.Comparison{
		Query:             req.Query,
		ReferenceCurrency: currency.Reference,
		RatesDegraded:     snap.Degraded,
		RatesSource:       snap.Source,
		Results:           results,
		Analysis:          Analyze(results, c.home),
	}, nil
}

func (c *Comparer) searchCountry(ctx context.Context, query, code string, snap *currency.Snapshot) models.CountryResult {
	country, ok := catalog.Lookup(code)
	if !ok {
		return models.CountryResult{
			Country:    code,
			Query:      query,
			Offers:     []models.Offer{},
			Error:      fmt.Sprintf("unsupported country %q", code),
			SearchedAt: c.searcher.now(),
		}
	}

	res, err := c.searcher.search(ctx, Request{Query: query, Country: country.Code}, snap)
	if err != nil {
		slog.Warn("country search failed", "country", country.Code, "error", err)
		return models.CountryResult{
			Country:     country.Code,
			CountryName: country.Name,
			Currency:    country.Currency,
			Query:       query,
			Offers:      []models.Offer{},
			Error:       err.Error(),
			SearchedAt:  c.searcher.now(),
		}
	}
	return *res
}

// Analyze ranks the countries that have a cheapest offer. It returns nil when
// no country has one.
func Analyze(results []models.CountryResult, home string) *models.Analysis {
	var (
		a         models.Analysis
		lo, hi    decimal.Decimal
		homePrice decimal.Decimal
		haveHome  bool
	)
	for _, r := range results {
		if r.Cheapest == nil || r.CheapestReference <= 0 {
			continue
		}
		p := decimal.NewFromFloat(r.CheapestReference)
		if a.CountriesWithOffers == 0 || p.LessThan(lo) {
			lo = p
			a.CheapestCountry = r.Country
		}
		if a.CountriesWithOffers == 0 || p.GreaterThan(hi) {
			hi = p
			a.MostExpensiveCountry = r.Country
		}
		a.CountriesWithOffers++
		if r.Country == home {
			homePrice, haveHome = p, true
		}
	}
	if a.CountriesWithOffers == 0 {
		return nil
	}

	a.CheapestPrice = lo.Round(2).InexactFloat64()
	a.MostExpensivePrice = hi.Round(2).InexactFloat64()
	savings := hi.Sub(lo)
	a.Savings = savings.Round(2).InexactFloat64()
	if hi.IsPositive() {
		a.SavingsPercent = savings.Div(hi).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
	}
	if haveHome {
		a.HomeCountry = home
		a.HomePrice = homePrice.Round(2).InexactFloat64()
		a.HomeSavings = homePrice.Sub(lo).Round(2).InexactFloat64()
	}
	return &a
}
