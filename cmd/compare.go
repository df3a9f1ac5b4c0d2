package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukman83/pricecompare/config"
	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/reconcile"
	"github.com/lukman83/pricecompare/internal/ui"
)

var compareCmd = &cobra.Command{
	Use:   "compare [query]",
	Short: "Compare a product's cheapest offer across countries",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().String("countries", "", "Comma-separated country codes (default: all)")
	compareCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	query := args[0]
	countries, _ := cmd.Flags().GetString("countries")
	format, _ := cmd.Flags().GetString("format")

	codes := config.SplitList(countries)
	for _, code := range codes {
		if _, ok := catalog.Lookup(code); !ok {
			return fmt.Errorf("unsupported country %q (supported: %s)", code, countryCodesHelp())
		}
	}

	svc, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}

	spin := ui.NewSpinner(os.Stderr)
	spin.Start(fmt.Sprintf("Comparing '%s'...", query))
	ctx := reconcile.WithProgress(cmd.Context(), spin.Update)
	cmp, err := svc.comparer.Compare(ctx, query, codes)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("compare failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "table":
		printComparison(out, cmp)
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cmp)
	}
	return nil
}
