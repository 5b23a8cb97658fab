package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockreport/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Generate and inspect the pipeline crontab",
	Long: `Work with the cron runbook of the stock analysis pipeline.

Subcommands:
  crontab  - Print an installable crontab
  next     - Show when each job runs next
  validate - Check every cron expression

Examples:
  stockreport schedule crontab | crontab -
  stockreport schedule next --from 2024-03-22T19:00:00+09:00`,
}

var scheduleCrontabCmd = &cobra.Command{
	Use:   "crontab",
	Short: "Print an installable crontab",
	Args:  cobra.NoArgs,
	RunE:  runScheduleCrontab,
}

var scheduleNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next run of every enabled job",
	Args:  cobra.NoArgs,
	RunE:  runScheduleNext,
}

var scheduleValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the job schedules",
	Args:  cobra.NoArgs,
	RunE:  runScheduleValidate,
}

var (
	scheduleOutput string
	scheduleFrom   string
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleCrontabCmd)
	scheduleCmd.AddCommand(scheduleNextCmd)
	scheduleCmd.AddCommand(scheduleValidateCmd)

	scheduleCrontabCmd.Flags().StringVarP(&scheduleOutput, "output", "o", "", "write the crontab to a file")
	scheduleNextCmd.Flags().StringVar(&scheduleFrom, "from", "", "reference time in RFC3339 (default now)")
}

func runScheduleCrontab(cmd *cobra.Command, args []string) error {
	jobs := schedule.Jobs(cfg.Schedule)
	if err := schedule.Validate(jobs); err != nil {
		return err
	}
	tab := schedule.Crontab(jobs)
	if scheduleOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), tab)
		return nil
	}
	if err := os.WriteFile(scheduleOutput, []byte(tab), 0o644); err != nil {
		return fmt.Errorf("write crontab: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote crontab: %s\n", scheduleOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Install with: crontab %s\n", scheduleOutput)
	return nil
}

func runScheduleNext(cmd *cobra.Command, args []string) error {
	from := time.Now()
	if scheduleFrom != "" {
		t, err := time.Parse(time.RFC3339, scheduleFrom)
		if err != nil {
			return fmt.Errorf("invalid --from %q: %w", scheduleFrom, err)
		}
		from = t
	}

	runs, err := schedule.Next(schedule.Jobs(cfg.Schedule), from)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tNEXT RUN\tIN\tSPEC")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Job.Name, r.At.Format("Mon 2006-01-02 15:04"), r.At.Sub(from).Round(time.Minute), r.Job.Spec)
	}
	return tw.Flush()
}

func runScheduleValidate(cmd *cobra.Command, args []string) error {
	jobs := schedule.Jobs(cfg.Schedule)
	if err := schedule.Validate(jobs); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	for _, j := range jobs {
		state := "enabled"
		if !j.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %-16s %-14s %s\n", j.Name, j.Spec, state)
	}
	return nil
}
