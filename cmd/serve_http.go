package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/lukman83/pricecompare/mcp"
)

var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Start MCP HTTP server",
	Long:  "Start the MCP server over streamable HTTP for remote access. Set PRICECMP_API_KEY to require a Bearer token.",
	Args:  cobra.NoArgs,
	RunE:  runServeHTTP,
}

func init() {
	serveHTTPCmd.Flags().String("port", "", "HTTP port (default from $PORT or 8080)")
	rootCmd.AddCommand(serveHTTPCmd)
}

func runServeHTTP(cmd *cobra.Command, args []string) error {
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		cfg.HTTPPort = p
	}

	svc, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%s", cfg.HTTPPort)
	return mcpserver.ServeHTTP(cmd.Context(), addr, cfg.APIKey, svc.backend())
}
