package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lukman83/pricecompare/config"
	"github.com/lukman83/pricecompare/internal/currency"
	"github.com/lukman83/pricecompare/internal/httputil"
	"github.com/lukman83/pricecompare/internal/provider"
	"github.com/lukman83/pricecompare/internal/reconcile"
	"github.com/lukman83/pricecompare/internal/validation"
	mcpserver "github.com/lukman83/pricecompare/mcp"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pricecmp",
	Short: "pricecmp - cross-country price comparison CLI & MCP server",
	Long: "Search trusted retailers in ten countries for a product, rank offers by price\n" +
		"and compare the cheapest offer per country in a single reference currency.",
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("strategy", "", "Provider strategy: fallback, all")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-provider timeout (e.g. 10s)")
	rootCmd.PersistentFlags().String("validator", "", "Result validator: auto, groq, gemini, heuristic, none")
	rootCmd.PersistentFlags().StringSlice("providers", nil, "Providers in priority order (default: serpapi,amazon,product-search,walmart,ebay)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	flags := rootCmd.PersistentFlags()
	if v, _ := flags.GetString("strategy"); v != "" {
		cfg.Strategy = strings.ToLower(v)
	}
	if v, _ := flags.GetDuration("timeout"); v > 0 {
		cfg.ProviderTimeout = v
	}
	if v, _ := flags.GetString("validator"); v != "" {
		cfg.Validator = strings.ToLower(v)
	}
	if v, _ := flags.GetStringSlice("providers"); len(v) > 0 {
		cfg.Providers = config.SplitList(strings.Join(v, ","))
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}

	slog.SetDefault(cfg.NewLogger(os.Stderr))
}

// services is everything a command needs, built once from cfg.
type services struct {
	rates    *currency.Cache
	searcher *reconcile.Searcher
	comparer *reconcile.Comparer
}

func (s *services) backend() *mcpserver.Backend {
	return &mcpserver.Backend{Searcher: s.searcher, Comparer: s.comparer, Rates: s.rates}
}

// buildHTTPClient creates the rate-limited HTTP client shared by all upstreams.
func buildHTTPClient() *http.Client {
	baseTransport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return httputil.NewHTTPClient(httputil.NewTransport(baseTransport, cfg.RatePerSecond, cfg.RateBurst))
}

// buildServices wires providers, the rate cache, the validator and the
// searchers from cfg.
func buildServices(ctx context.Context) (*services, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := buildHTTPClient()

	registry := provider.NewRegistry()
	registry.Register(provider.NewSerpAPI(client, cfg.SerpAPIKey))
	registry.Register(provider.NewAmazon(client, cfg.RapidAPIKey))
	registry.Register(provider.NewProductSearch(client, cfg.RapidAPIKey))
	registry.Register(provider.NewWalmart(client, cfg.RapidAPIKey))
	registry.Register(provider.NewEBay(client, cfg.RapidAPIKey))

	providers, err := registry.Ordered(cfg.Providers)
	if err != nil {
		return nil, err
	}
	if cfg.SerpAPIKey == "" && cfg.RapidAPIKey == "" {
		slog.Warn("no SERP_API_KEY or RAPIDAPI_KEY configured; searches will return no offers")
	}

	rates := currency.NewCache(
		currency.NewFreeCurrencyClient(client, cfg.FreeCurrencyKey),
		currency.WithTTL(cfg.RateTTL),
	)

	validator, err := buildValidator(ctx, client)
	if err != nil {
		return nil, err
	}

	strategy, err := reconcile.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	searcher := reconcile.NewSearcher(providers, rates, reconcile.Options{
		Strategy:          strategy,
		ProviderTimeout:   cfg.ProviderTimeout,
		Validator:         validator,
		ValidationTimeout: cfg.ValidationTimeout,
		MaxOffers:         cfg.MaxOffers,
	})

	return &services{
		rates:    rates,
		searcher: searcher,
		comparer: reconcile.NewComparer(searcher, cfg.MaxConcurrent, cfg.HomeCountry),
	}, nil
}

// buildValidator picks the result validator. "auto" prefers Groq, then
// Gemini, and runs without validation when neither key is set.
func buildValidator(ctx context.Context, client *http.Client) (reconcile.Validator, error) {
	switch cfg.Validator {
	case "none":
		return nil, nil
	case "heuristic":
		return validation.Heuristic{}, nil
	case "groq":
		g := validation.NewGroq(client, cfg.GroqAPIKey, cfg.GroqModel)
		if g == nil {
			return nil, errors.New("validator groq requires GROQ_API_KEY")
		}
		return g, nil
	case "gemini":
		g, err := validation.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, errors.New("validator gemini requires GEMINI_API_KEY")
		}
		return g, nil
	}

	if g := validation.NewGroq(client, cfg.GroqAPIKey, cfg.GroqModel); g != nil {
		return g, nil
	}
	g, err := validation.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Warn("gemini validator unavailable", "error", err)
		return nil, nil
	}
	if g != nil {
		return g, nil
	}
	return nil, nil
}
