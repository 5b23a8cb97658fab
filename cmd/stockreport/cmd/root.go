package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockreport/config"
	"github.com/rustyeddy/stockreport/i18n"
	"github.com/rustyeddy/stockreport/internal/logger"
	"github.com/rustyeddy/stockreport/internal/trace"
	"github.com/rustyeddy/stockreport/journal"
)

var rootCmd = &cobra.Command{
	Use:   "stockreport",
	Short: "Trading history reports for the stock analysis pipeline",
	Long: `Stockreport renders the trading history produced by the stock analysis
pipeline in Korean or English.

It provides tools for:
  - Printing the trading history as text, Org-mode, HTML or JSON
  - Serving the history dashboard over HTTP
  - Switching and persisting the display language
  - Generating the crontab that drives the batch pipeline
  - Importing and exporting trade records`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

var (
	rootConfigPath string
	rootEnvFiles   []string
	rootLogLevel   string
	rootDev        bool

	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootConfigPath, "config", "c", "", "config file (YAML or JSON); defaults are used when empty")
	rootCmd.PersistentFlags().StringSliceVar(&rootEnvFiles, "env", nil, "dotenv files to load (default .env when present)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootDev, "dev", false, "human readable development logging")
}

// setup loads configuration and starts logging and tracing for every
// command.
func setup(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if rootConfigPath != "" {
		loaded, err := config.LoadFromFile(rootConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		c = loaded
	}
	if err := c.ApplyEnv(rootEnvFiles...); err != nil {
		return err
	}
	if rootLogLevel != "" {
		c.Log.Level = rootLogLevel
	}
	if rootDev {
		c.Log.Development = true
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c

	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if cfg.Trace.Enabled {
		if err := trace.Init(version, os.Stderr); err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
	}
	logger.Debug(cmd.Context(), "config loaded", "command", cmd.Name(), "source", cfg.Source.Type)
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if err := trace.Shutdown(context.Background()); err != nil {
		logger.ErrorWithErr(context.Background(), "trace shutdown", err)
	}
	logger.Sync()
}

// newProvider restores the persisted language choice.
func newProvider(ctx context.Context) *i18n.Provider {
	return i18n.NewProvider(ctx, i18n.NewFileStore(cfg.Locale.PrefsFile))
}

func openSource() (journal.Reader, error) {
	r, err := journal.Open(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", cfg.Source.Type, err)
	}
	return r, nil
}
