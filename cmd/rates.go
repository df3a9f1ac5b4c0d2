package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the exchange rates used for the reference currency",
	Args:  cobra.NoArgs,
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(ratesCmd)
}

func runRates(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	svc, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}
	snap, err := svc.rates.Rates(cmd.Context())
	if err != nil {
		return fmt.Errorf("rates: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	default:
		printRates(out, snap)
	}
	return nil
}
