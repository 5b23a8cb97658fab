package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockreport/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades as CSV",
	Long: `Write every trade of the configured source as CSV, one row per
trade with its sector, investment period and target price.

Example:
  stockreport export -o trades.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportOutput string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "CSV file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	trades, err := src.ListTrades(cmd.Context())
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := journal.WriteCSV(w, trades); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported %d trades to %s\n", len(trades), exportOutput)
	}
	return nil
}
