package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/currency"
	"github.com/lukman83/pricecompare/internal/models"
	"github.com/lukman83/pricecompare/internal/provider"
)

// ErrEmptyQuery is returned when a search has no query text.
var ErrEmptyQuery = errors.New("query must not be empty")

const (
	DefaultProviderTimeout   = 10 * time.Second
	DefaultValidationTimeout = 15 * time.Second
	DefaultMaxOffers         = 10
)

// Strategy decides how providers are consulted for one search.
type Strategy string

const (
	// StrategyFallback asks providers one at a time in priority order and
	// stops at the first that leaves at least one offer after filtering.
	StrategyFallback Strategy = "fallback"
	// StrategyAll asks every provider concurrently.
	StrategyAll Strategy = "all"
)

// ParseStrategy accepts "fallback", "all", or "" (fallback).
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyFallback:
		return StrategyFallback, nil
	case StrategyAll:
		return StrategyAll, nil
	}
	return "", fmt.Errorf("unknown strategy %q (want fallback or all)", s)
}

// Validator classifies offers as the searched product or not. Verdicts are
// keyed by item index; an item without a verdict is kept.
type Validator interface {
	Name() string
	Validate(ctx context.Context, query string, items []models.ValidationItem) (map[int]models.Verdict, error)
}

// RateSource provides the exchange-rate snapshot used for reference prices.
type RateSource interface {
	Rates(ctx context.Context) (*currency.Snapshot, error)
}

// Request is a single-country search.
type Request struct {
	Query   string `validate:"required"`
	Country string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Options tune a Searcher. Zero values pick the defaults, except MaxOffers
// where zero means no limit.
type Options struct {
	Strategy          Strategy
	ProviderTimeout   time.Duration
	Validator         Validator
	ValidationTimeout time.Duration
	MaxOffers         int
}

// Searcher runs one country search across its providers and reconciles the
// results.
type Searcher struct {
	providers         []provider.Provider
	rates             RateSource
	strategy          Strategy
	timeout           time.Duration
	validator         Validator
	validationTimeout time.Duration
	maxOffers         int
	now               func() time.Time
}

// NewSearcher builds a Searcher. providers must be in priority order. rates
// may be nil, in which case the static fallback rates are used.
func NewSearcher(providers []provider.Provider, rates RateSource, opts Options) *Searcher {
	s := &Searcher{
		providers:         providers,
		rates:             rates,
		strategy:          opts.Strategy,
		timeout:           opts.ProviderTimeout,
		validator:         opts.Validator,
		validationTimeout: opts.ValidationTimeout,
		maxOffers:         opts.MaxOffers,
		now:               time.Now,
	}
	if s.strategy == "" {
		s.strategy = StrategyFallback
	}
	if s.timeout <= 0 {
		s.timeout = DefaultProviderTimeout
	}
	if s.validationTimeout <= 0 {
		s.validationTimeout = DefaultValidationTimeout
	}
	return s
}

// Strategy returns the provider strategy in effect.
func (s *Searcher) Strategy() Strategy { return s.strategy }

// Search returns ranked offers for req. Provider and validator failures
// shrink the result but never fail the search; the only error is
// ErrEmptyQuery (or a cancelled context while fetching rates).
func (s *Searcher) Search(ctx context.Context, req Request) (*models.CountryResult, error) {
	req, err := checkRequest(req)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, req, snap)
}

func (s *Searcher) snapshot(ctx context.Context) (*currency.Snapshot, error) {
	if s.rates == nil {
		return currency.FallbackSnapshot(s.now()), nil
	}
	snap, err := s.rates.Rates(ctx)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: %w", err)
	}
	return snap, nil
}

func checkRequest(req Request) (Request, error) {
	req.Query = strings.TrimSpace(req.Query)
	if err := validate.Struct(req); err != nil {
		return req, ErrEmptyQuery
	}
	return req, nil
}

func (s *Searcher) search(ctx context.Context, req Request, snap *currency.Snapshot) (*models.CountryResult, error) {
	req, err := checkRequest(req)
	if err != nil {
		return nil, err
	}
	country := catalog.Resolve(req.Country)

	var (
		sets   []provider.ResultSet
		offers []models.Offer
	)
	switch s.strategy {
	case StrategyAll:
		sets = s.fetchAll(ctx, req.Query, country)
		offers = Reconcile(country, sets)
	default:
		sets, offers = s.fetchFallback(ctx, req.Query, country)
	}

	res := &models.CountryResult{
		Country:     country.Code,
		CountryName: country.Name,
		Currency:    country.Currency,
		Query:       req.Query,
		SourcesUsed: []string{},
		SearchedAt:  s.now(),
	}
	for _, set := range sets {
		res.Stats.Raw += len(set.Offers)
		if len(set.Offers) > 0 {
			res.SourcesUsed = append(res.SourcesUsed, set.Provider)
		}
	}
	res.Stats.Filtered = len(offers)

	offers = s.validateOffers(ctx, req.Query, offers)
	res.Stats.Validated = len(offers)

	if s.maxOffers > 0 && len(offers) > s.maxOffers {
		offers = offers[:s.maxOffers]
	}
	for i := range offers {
		offers[i].PriceReference = currency.Round2(currency.ToReference(offers[i].PriceNumeric, offers[i].Currency, snap))
	}
	if offers == nil {
		offers = []models.Offer{}
	}
	res.Offers = offers
	res.Stats.Returned = len(offers)

	if len(offers) > 0 {
		cheapest := offers[0]
		res.Cheapest = &cheapest
		res.CheapestReference = cheapest.PriceReference
	}

	slog.Info("search complete",
		"country", country.Code,
		"query", req.Query,
		"strategy", string(s.strategy),
		"raw", res.Stats.Raw,
		"returned", res.Stats.Returned,
		"sources", strings.Join(res.SourcesUsed, ","),
	)
	return res, nil
}

// fetchFallback walks providers in priority order, reconciling after each
// one, and stops as soon as the accumulated sets yield an offer.
func (s *Searcher) fetchFallback(ctx context.Context, query string, country catalog.Country) ([]provider.ResultSet, []models.Offer) {
	var (
		sets   []provider.ResultSet
		offers []models.Offer
	)
	for i, p := range s.providers {
		if i == 0 {
			ReportProgress(ctx, fmt.Sprintf("Searching %s...", p.Name()))
		} else {
			ReportProgress(ctx, fmt.Sprintf("No offers yet, trying %s...", p.Name()))
		}
		sets = append(sets, s.query(ctx, p, query, country))
		offers = Reconcile(country, sets)
		if len(offers) > 0 {
			break
		}
	}
	return sets, offers
}

// fetchAll queries every provider concurrently. Sets come back in priority
// order regardless of completion order.
func (s *Searcher) fetchAll(ctx context.Context, query string, country catalog.Country) []provider.ResultSet {
	ReportProgress(ctx, fmt.Sprintf("Searching %d providers...", len(s.providers)))

	sets := make([]provider.ResultSet, len(s.providers))
	var g errgroup.Group
	for i, p := range s.providers {
		g.Go(func() error {
			sets[i] = s.query(ctx, p, query, country)
			return nil
		})
	}
	_ = g.Wait()
	return sets
}

// query calls one provider under its own timeout. A failure becomes an empty
// contribution.
func (s *Searcher) query(ctx context.Context, p provider.Provider, query string, country catalog.Country) provider.ResultSet {
	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	offers, err := p.Search(pctx, query, country)
	if err != nil {
		slog.Warn("provider failed",
			"provider", p.Name(),
			"country", country.Code,
			"elapsed", s.now().Sub(start),
			"error", err,
		)
		return provider.ResultSet{Provider: p.Name(), Err: err}
	}
	slog.Debug("provider returned", "provider", p.Name(), "country", country.Code, "offers", len(offers))
	return provider.ResultSet{Provider: p.Name(), Offers: offers}
}

// validateOffers drops offers the validator explicitly rejects. Any
// validator failure keeps every offer.
func (s *Searcher) validateOffers(ctx context.Context, query string, offers []models.Offer) []models.Offer {
	if s.validator == nil || len(offers) == 0 {
		return offers
	}
	ReportProgress(ctx, fmt.Sprintf("Validating %d offers with %s...", len(offers), s.validator.Name()))

	items := make([]models.ValidationItem, len(offers))
	for i, o := range offers {
		items[i] = models.ValidationItem{Title: o.TitleText(), Price: o.PriceNumeric, Currency: o.Currency}
	}

	vctx, cancel := context.WithTimeout(ctx, s.validationTimeout)
	defer cancel()
	verdicts, err := s.validator.Validate(vctx, query, items)
	if err != nil {
		slog.Warn("validation failed, keeping all offers", "validator", s.validator.Name(), "error", err)
		return offers
	}

	kept := make([]models.Offer, 0, len(offers))
	for i, o := range offers {
		if v, ok := verdicts[i]; ok && !v.Valid {
			slog.Debug("offer rejected by validator", "validator", s.validator.Name(), "title", o.TitleText(), "reason", v.Reason)
			continue
		}
		kept = append(kept, o)
	}
	return kept
}
