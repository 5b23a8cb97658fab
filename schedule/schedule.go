// Package schedule describes the batch pipeline's cron runbook: which
// external jobs run when, where they log, and the crontab that installs
// them. It never executes the jobs itself.
package schedule

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rustyeddy/stockreport/config"
)

// Job names.
const (
	JobMorning         = "morning"
	JobAfternoon       = "afternoon"
	JobDataUpdate      = "data-update"
	JobLogCleanup      = "log-cleanup"
	JobPortfolioReport = "portfolio-report"
)

// Python is the interpreter the pipeline scripts run under.
const Python = "python3"

// Job is one crontab entry.
type Job struct {
	Name        string `json:"name" yaml:"name"`
	Spec        string `json:"spec" yaml:"spec"`
	Command     string `json:"command" yaml:"command"`
	Description string `json:"description" yaml:"description"`
	Optional    bool   `json:"optional" yaml:"optional"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
}

// Schedule parses the job's five-field spec.
func (j Job) Schedule() (cron.Schedule, error) {
	s, err := cron.ParseStandard(j.Spec)
	if err != nil {
		return nil, fmt.Errorf("job %s: parse %q: %w", j.Name, j.Spec, err)
	}
	return s, nil
}

// Line is the crontab line for the job. Percent signs are escaped because
// cron treats a bare % as a newline. Disabled jobs are commented out.
func (j Job) Line() string {
	line := j.Spec + " " + strings.ReplaceAll(j.Command, "%", `\%`)
	if !j.Enabled {
		return "# " + line
	}
	return line
}

// Jobs returns the runbook for cfg in install order.
func Jobs(cfg config.ScheduleConfig) []Job {
	dir := cfg.ProjectDir
	logs := cfg.LogDir
	if !filepath.IsAbs(logs) {
		logs = filepath.Join(dir, logs)
	}

	run := func(name, script string, args ...string) string {
		cmd := append([]string{Python, quote(script)}, args...)
		return fmt.Sprintf("cd %s && %s >> %s 2>&1", quote(dir), strings.Join(cmd, " "), logFile(logs, name))
	}

	return []Job{
		{
			Name:        JobMorning,
			Spec:        "30 9 * * 1-5",
			Command:     run(JobMorning, cfg.Orchestrator, "--mode", "morning"),
			Description: "Weekday morning screening and analysis after the open",
			Enabled:     true,
		},
		{
			Name:        JobAfternoon,
			Spec:        "40 15 * * 1-5",
			Command:     run(JobAfternoon, cfg.Orchestrator, "--mode", "afternoon"),
			Description: "Weekday afternoon analysis after the close",
			Enabled:     true,
		},
		{
			Name:        JobDataUpdate,
			Spec:        "0 7 * * 1-5",
			Command:     run(JobDataUpdate, cfg.UpdateScript),
			Description: "Weekday market data refresh before the open",
			Enabled:     true,
		},
		{
			Name: JobLogCleanup,
			Spec: "0 3 * * *",
			Command: fmt.Sprintf("find %s -name '*.log' -mtime +%d -delete >> %s 2>&1",
				quote(logs), cfg.RetentionDays, logFile(logs, JobLogCleanup)),
			Description: fmt.Sprintf("Daily removal of logs older than %d days", cfg.RetentionDays),
			Enabled:     true,
		},
		{
			Name:        JobPortfolioReport,
			Spec:        "0 18 * * *",
			Command:     run(JobPortfolioReport, cfg.ReportScript),
			Description: "Daily portfolio report",
			Optional:    true,
			Enabled:     cfg.EnablePortfolioReport,
		},
	}
}

func logFile(dir, name string) string {
	return quote(dir) + "/" + name + "_$(date +%Y%m%d).log"
}

// quote single-quotes s for sh when it holds anything beyond a safe set.
func quote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:=+@", r):
		return false
	}
	return true
}

// Validate parses every job spec and rejects duplicate names.
func Validate(jobs []Job) error {
	seen := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		if j.Name == "" {
			return fmt.Errorf("job with spec %q has no name", j.Spec)
		}
		if seen[j.Name] {
			return fmt.Errorf("duplicate job %s", j.Name)
		}
		seen[j.Name] = true
		if _, err := j.Schedule(); err != nil {
			return err
		}
	}
	return nil
}

// Run is one upcoming activation.
type Run struct {
	Job Job       `json:"job"`
	At  time.Time `json:"at"`
}

// Next returns the next activation of every enabled job after from, soonest
// first. Times are in from's location.
func Next(jobs []Job, from time.Time) ([]Run, error) {
	runs := make([]Run, 0, len(jobs))
	for _, j := range jobs {
		if !j.Enabled {
			continue
		}
		s, err := j.Schedule()
		if err != nil {
			return nil, err
		}
		runs = append(runs, Run{Job: j, At: s.Next(from)})
	}
	sort.SliceStable(runs, func(a, b int) bool { return runs[a].At.Before(runs[b].At) })
	return runs, nil
}

// Crontab renders jobs as an installable crontab. Disabled optional jobs
// stay in the file commented out so they can be switched on by hand.
func Crontab(jobs []Job) string {
	var b strings.Builder
	b.WriteString("# stockreport batch pipeline\n")
	b.WriteString("# min hour dom mon dow command\n")
	for _, j := range jobs {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("# %s: %s\n", j.Name, j.Description))
		b.WriteString(j.Line())
		b.WriteString("\n")
	}
	return b.String()
}
