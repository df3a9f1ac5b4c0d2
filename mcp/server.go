package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/lukman83/pricecompare/internal/models"
	"github.com/lukman83/pricecompare/internal/reconcile"
)

const (
	serverName    = "pricecompare"
	serverVersion = "1.0.0"
)

// Searcher runs a single-country search.
type Searcher interface {
	Search(ctx context.Context, req reconcile.Request) (*models.CountryResult, error)
}

// Comparer runs a multi-country comparison.
type Comparer interface {
	Compare(ctx context.Context, query string, codes []string) (*models.Comparison, error)
}

// Backend holds the services the tools call into.
type Backend struct {
	Searcher Searcher
	Comparer Comparer
	Rates    reconcile.RateSource
}

// NewServer builds an MCP server with all tools registered against b.
func NewServer(b *Backend) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	registerTools(s, b)
	return s
}

// Serve starts the MCP stdio server with all tools registered.
func Serve(b *Backend) error {
	return server.ServeStdio(NewServer(b))
}
