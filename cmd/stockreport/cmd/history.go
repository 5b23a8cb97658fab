package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockreport/history"
	"github.com/rustyeddy/stockreport/i18n"
	"github.com/rustyeddy/stockreport/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the trading history report",
	Long: `Render the trading history with best and worst trades, sector and
investment period averages, and every trade's scenario.

The persisted language is used unless --lang is given. A date range
limits the report to trades sold within it and recomputes the summary.

Examples:
  stockreport history
  stockreport history --lang en --format html -o history.html
  stockreport history --from 2024-01-01 --to 2024-03-31`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historyFormat string
	historyLang   string
	historyFrom   string
	historyTo     string
	historyOutput string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyFormat, "format", "F", "text", "output format: text, org, html or json")
	historyCmd.Flags().StringVarP(&historyLang, "lang", "l", "", "language for this report only (ko or en)")
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "first sell date to include (YYYY-MM-DD)")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "last sell date to include (YYYY-MM-DD)")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", "", "write to file instead of stdout")
}

// soldBetween is implemented by sources that can filter by sell date
// natively.
type soldBetween interface {
	ListTradesSoldBetween(ctx context.Context, start, end time.Time) ([]history.Trade, error)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, err := report.ParseFormat(historyFormat)
	if err != nil {
		return err
	}
	tr, err := translatorFor(ctx, historyLang)
	if err != nil {
		return err
	}
	start, end, ranged, err := parseRange(historyFrom, historyTo)
	if err != nil {
		return err
	}

	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	var trades []history.Trade
	var summary history.Summary
	if ranged {
		if sb, ok := src.(soldBetween); ok {
			trades, err = sb.ListTradesSoldBetween(ctx, start, end)
		} else {
			trades, err = src.ListTrades(ctx)
			trades = filterSold(trades, start, end)
		}
		if err != nil {
			return fmt.Errorf("list trades: %w", err)
		}
		summary = history.ComputeSummary(trades)
	} else {
		if trades, err = src.ListTrades(ctx); err != nil {
			return fmt.Errorf("list trades: %w", err)
		}
		if summary, err = src.Summary(ctx); err != nil {
			return fmt.Errorf("load summary: %w", err)
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if historyOutput != "" {
		f, err := os.Create(historyOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := report.NewRenderer().Render(ctx, w, format, tr, trades, summary); err != nil {
		return err
	}
	if historyOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d trades to %s\n", len(trades), historyOutput)
	}
	return nil
}

// translatorFor pins lang when given and falls back to the persisted choice.
func translatorFor(ctx context.Context, lang string) (i18n.Translator, error) {
	if lang == "" {
		return newProvider(ctx), nil
	}
	l, err := i18n.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	return i18n.Static(l), nil
}

// parseRange turns inclusive YYYY-MM-DD bounds into a half-open interval.
// A missing bound is open.
func parseRange(from, to string) (start, end time.Time, ok bool, err error) {
	if from == "" && to == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	start = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	if from != "" {
		if start, err = time.Parse("2006-01-02", from); err != nil {
			return start, end, false, fmt.Errorf("invalid --from %q: %w", from, err)
		}
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return start, end, false, fmt.Errorf("invalid --to %q: %w", to, err)
		}
		end = t.AddDate(0, 0, 1)
	}
	if !start.Before(end) {
		return start, end, false, fmt.Errorf("--from %s is after --to %s", from, to)
	}
	return start, end, true, nil
}

// filterSold keeps trades sold on a day in [start, end). The day is the
// calendar date as written, ignoring any offset, which matches the SQLite
// journal's text comparison.
func filterSold(trades []history.Trade, start, end time.Time) []history.Trade {
	var out []history.Trade
	for _, t := range trades {
		sold, ok := i18n.ParseDate(t.SellDate)
		if !ok {
			continue
		}
		day := time.Date(sold.Year(), sold.Month(), sold.Day(), 0, 0, 0, 0, time.UTC)
		if !day.Before(start) && day.Before(end) {
			out = append(out, t)
		}
	}
	return out
}
