package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lukman83/pricecompare/config"
	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/reconcile"
)

type tools struct {
	b *Backend
}

func registerTools(s *server.MCPServer, b *Backend) {
	t := &tools{b: b}

	// search_offers
	searchTool := mcp.NewTool("search_offers",
		mcp.WithDescription("Search trusted retailers in one country for a product and return offers ranked by price"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Product name, e.g. \"iPhone 16 Pro 256GB\""),
		),
		mcp.WithString("country",
			mcp.Description("Two-letter country code (default: us). One of: in, us, gb, de, fr, au, ca, jp, sg, ae"),
		),
	)
	s.AddTool(searchTool, t.handleSearchOffers)

	// compare_prices
	compareTool := mcp.NewTool("compare_prices",
		mcp.WithDescription("Compare a product's cheapest trusted offer across countries, converted to INR"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Product name"),
		),
		mcp.WithString("countries",
			mcp.Description("Comma-separated country codes (default: all supported countries)"),
		),
	)
	s.AddTool(compareTool, t.handleComparePrices)

	// exchange_rates
	ratesTool := mcp.NewTool("exchange_rates",
		mcp.WithDescription("Current exchange rates against INR and whether they are live or fallback values"),
	)
	s.AddTool(ratesTool, t.handleExchangeRates)

	// list_countries
	countriesTool := mcp.NewTool("list_countries",
		mcp.WithDescription("List supported countries with currency, minimum plausible price and trusted retailers"),
	)
	s.AddTool(countriesTool, t.handleListCountries)
}

func (t *tools) handleSearchOffers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	country := request.GetString("country", catalog.DefaultCountry)

	res, err := t.b.Searcher.Search(ctx, reconcile.Request{Query: query, Country: country})
	if errors.Is(err, reconcile.ErrEmptyQuery) {
		return mcp.NewToolResultError("query is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
	}
	return jsonResult(res)
}

func (t *tools) handleComparePrices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	codes := config.SplitList(request.GetString("countries", ""))
	for _, code := range codes {
		if _, ok := catalog.Lookup(code); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unsupported country %q", code)), nil
		}
	}

	cmp, err := t.b.Comparer.Compare(ctx, query, codes)
	if errors.Is(err, reconcile.ErrEmptyQuery) {
		return mcp.NewToolResultError("query is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("compare error: %v", err)), nil
	}
	return jsonResult(cmp)
}

func (t *tools) handleExchangeRates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := t.b.Rates.Rates(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rates error: %v", err)), nil
	}
	return jsonResult(snap)
}

func (t *tools) handleListCountries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(catalog.Summaries())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
