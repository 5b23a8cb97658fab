package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockreport/config"
	"github.com/rustyeddy/stockreport/internal/logger"
	"github.com/rustyeddy/stockreport/journal"
)

var importCmd = &cobra.Command{
	Use:   "import <feed-file>",
	Short: "Load a trade feed into the SQLite journal",
	Long: `Append every trade of a YAML or JSON feed file to the SQLite database
named by source.db_path (or --db). Trade IDs from the feed are kept.

Example:
  stockreport import history.json --db trading.db`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importDBPath string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importDBPath, "db", "d", "", "SQLite database (default source.db_path)")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	feed, err := journal.LoadFeed(args[0])
	if err != nil {
		return err
	}

	path := importDBPath
	if path == "" {
		path = cfg.Source.DBPath
	}
	if path == "" {
		path = config.Default().Source.DBPath
	}
	db, err := journal.NewSQLite(path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	var w journal.Writer = db
	for i, t := range feed.History {
		if _, err := w.RecordTrade(ctx, t); err != nil {
			return fmt.Errorf("import trade %d (%s): %w", i, t.Ticker, err)
		}
	}

	logger.Info(ctx, "feed imported", "file", args[0], "db", path, "trades", len(feed.History))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades into %s\n", len(feed.History), path)
	return nil
}
