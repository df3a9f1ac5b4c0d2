package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukman83/pricecompare/internal/catalog"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List supported countries and their trusted retailers",
	Args:  cobra.NoArgs,
	RunE:  runCountries,
}

func init() {
	countriesCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(countriesCmd)
}

func runCountries(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog.Summaries())
	default:
		printCountries(out, catalog.Summaries())
	}
	return nil
}

func countryCodesHelp() string {
	return strings.Join(catalog.Codes(), ", ")
}
