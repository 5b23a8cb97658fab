package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockreport/i18n"
)

var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Show or change the display language",
	Long: `Show or change the persisted display language.

The choice is stored in locale.prefs_file and used by every later report
and by the dashboard.

Examples:
  stockreport lang get
  stockreport lang set en`,
}

var langGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the active language",
	Args:  cobra.NoArgs,
	RunE:  runLangGet,
}

var langSetCmd = &cobra.Command{
	Use:       "set <ko|en>",
	Short:     "Switch and persist the language",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(i18n.Korean), string(i18n.English)},
	RunE:      runLangSet,
}

func init() {
	rootCmd.AddCommand(langCmd)
	langCmd.AddCommand(langGetCmd)
	langCmd.AddCommand(langSetCmd)
}

func runLangGet(cmd *cobra.Command, args []string) error {
	p := newProvider(cmd.Context())
	lang := p.Language()
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", lang, p.T("language."+string(lang)))
	return nil
}

func runLangSet(cmd *cobra.Command, args []string) error {
	lang, err := i18n.ParseLanguage(args[0])
	if err != nil {
		return err
	}
	p := newProvider(cmd.Context())
	if err := p.SetLanguage(lang); err != nil {
		return fmt.Errorf("set language: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", p.T("language.label"), p.T("language."+string(lang)))
	return nil
}
