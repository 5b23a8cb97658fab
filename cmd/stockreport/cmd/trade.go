package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockreport/history"
	"github.com/rustyeddy/stockreport/report"
)

var tradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Show one trade with its scenario",
	Long: `Print the details of a single trade from the SQLite journal.

Example:
  stockreport trade 42 --format org`,
	Args: cobra.ExactArgs(1),
	RunE: runTrade,
}

var (
	tradeFormat string
	tradeLang   string
)

func init() {
	rootCmd.AddCommand(tradeCmd)

	tradeCmd.Flags().StringVarP(&tradeFormat, "format", "F", "text", "output format: text, org, html or json")
	tradeCmd.Flags().StringVarP(&tradeLang, "lang", "l", "", "language for this output only (ko or en)")
}

// tradeGetter is implemented by sources with lookup by ID.
type tradeGetter interface {
	GetTrade(ctx context.Context, id int64) (history.Trade, error)
}

func runTrade(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid trade id %q: %w", args[0], err)
	}
	format, err := report.ParseFormat(tradeFormat)
	if err != nil {
		return err
	}
	tr, err := translatorFor(ctx, tradeLang)
	if err != nil {
		return err
	}

	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	var t history.Trade
	if g, ok := src.(tradeGetter); ok {
		if t, err = g.GetTrade(ctx, id); err != nil {
			return err
		}
	} else {
		trades, err := src.ListTrades(ctx)
		if err != nil {
			return fmt.Errorf("list trades: %w", err)
		}
		found := false
		for _, c := range trades {
			if c.ID == id {
				t, found = c, true
				break
			}
		}
		if !found {
			return fmt.Errorf("trade %d not found", id)
		}
	}

	one := []history.Trade{t}
	return report.NewRenderer().Render(ctx, cmd.OutOrStdout(), format, tr, one, history.ComputeSummary(one))
}
