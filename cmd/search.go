package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/reconcile"
	"github.com/lukman83/pricecompare/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search one country's trusted retailers for a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().String("country", catalog.DefaultCountry, "Country code: "+countryCodesHelp())
	searchCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	country, _ := cmd.Flags().GetString("country")
	format, _ := cmd.Flags().GetString("format")

	if _, ok := catalog.Lookup(country); !ok {
		return fmt.Errorf("unsupported country %q (supported: %s)", country, countryCodesHelp())
	}

	svc, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}

	spin := ui.NewSpinner(os.Stderr)
	spin.Start(fmt.Sprintf("Searching '%s' in %s...", query, country))
	ctx := reconcile.WithProgress(cmd.Context(), spin.Update)
	res, err := svc.searcher.Search(ctx, reconcile.Request{Query: query, Country: country})
	spin.Stop()
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "table":
		printCountryResult(out, res)
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return nil
}
