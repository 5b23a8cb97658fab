package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockreport/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage stockreport configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  stockreport config init -o stockreport.yaml
  stockreport config validate -f stockreport.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "stockreport.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if err := c.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  stockreport --config %s history\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	switch c.Source.Type {
	case config.SourceSQLite:
		fmt.Fprintf(out, "  Source: sqlite (%s)\n", c.Source.DBPath)
	default:
		fmt.Fprintf(out, "  Source: file (%s)\n", c.Source.FeedPath)
	}
	fmt.Fprintf(out, "  Preferences: %s\n", c.Locale.PrefsFile)
	fmt.Fprintf(out, "  Dashboard: %s\n", c.Server.Addr)
	fmt.Fprintf(out, "  Pipeline: %s (logs kept %d days)\n", c.Schedule.ProjectDir, c.Schedule.RetentionDays)
	return nil
}
