package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockreport/config"
)

func testConfig() config.ScheduleConfig {
	cfg := config.Default().Schedule
	cfg.ProjectDir = "/opt/prism"
	return cfg
}

func TestJobsDefault(t *testing.T) {
	jobs := Jobs(testConfig())
	require.Len(t, jobs, 5)
	require.NoError(t, Validate(jobs))

	want := map[string]string{
		JobMorning:         "30 9 * * 1-5",
		JobAfternoon:       "40 15 * * 1-5",
		JobDataUpdate:      "0 7 * * 1-5",
		JobLogCleanup:      "0 3 * * *",
		JobPortfolioReport: "0 18 * * *",
	}
	for _, j := range jobs {
		assert.Equal(t, want[j.Name], j.Spec, j.Name)
		assert.Contains(t, j.Command, "/opt/prism/logs/"+j.Name+"_$(date +%Y%m%d).log", j.Name)
	}

	assert.Equal(t, "cd /opt/prism && python3 stock_analysis_orchestrator.py --mode morning >> /opt/prism/logs/morning_$(date +%Y%m%d).log 2>&1", jobs[0].Command)
	assert.Contains(t, jobs[1].Command, "--mode afternoon")
	assert.Contains(t, jobs[3].Command, "find /opt/prism/logs -name '*.log' -mtime +7 -delete")

	last := jobs[4]
	assert.True(t, last.Optional)
	assert.False(t, last.Enabled)
}

func TestJobsAbsoluteLogDirAndQuoting(t *testing.T) {
	cfg := testConfig()
	cfg.ProjectDir = "/home/me/my project"
	cfg.LogDir = "/var/log/prism"
	cfg.EnablePortfolioReport = true

	jobs := Jobs(cfg)
	assert.Equal(t, "cd '/home/me/my project' && python3 update_stock_data.py >> /var/log/prism/data-update_$(date +%Y%m%d).log 2>&1", jobs[2].Command)
	assert.True(t, jobs[4].Enabled)
}

func TestLineEscapesPercent(t *testing.T) {
	for _, j := range Jobs(testConfig()) {
		line := j.Line()
		assert.Contains(t, line, `\%Y\%m\%d`, j.Name)
		assert.NotRegexp(t, `[^\\]%`, line, j.Name)
	}
}

func TestCrontab(t *testing.T) {
	tab := Crontab(Jobs(testConfig()))

	assert.True(t, strings.HasPrefix(tab, "# stockreport batch pipeline\n"))
	assert.Contains(t, tab, "\n30 9 * * 1-5 cd /opt/prism && ")
	assert.Contains(t, tab, "\n# 0 18 * * * cd /opt/prism && python3 portfolio_report.py")
	assert.Contains(t, tab, "# log-cleanup: Daily removal of logs older than 7 days\n")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		jobs   []Job
		errMsg string
	}{
		{"bad spec", []Job{{Name: "x", Spec: "61 * * * *"}}, "job x"},
		{"too few fields", []Job{{Name: "x", Spec: "* * *"}}, "job x"},
		{"duplicate", []Job{{Name: "x", Spec: "0 3 * * *"}, {Name: "x", Spec: "0 4 * * *"}}, "duplicate job x"},
		{"unnamed", []Job{{Spec: "0 3 * * *"}}, "has no name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.jobs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNext(t *testing.T) {
	jobs := Jobs(testConfig())

	// Monday 08:00: cleanup and data update already ran today.
	from := time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC)
	runs, err := Next(jobs, from)
	require.NoError(t, err)
	require.Len(t, runs, 4)

	assert.Equal(t, JobMorning, runs[0].Job.Name)
	assert.Equal(t, time.Date(2024, 3, 18, 9, 30, 0, 0, time.UTC), runs[0].At)
	assert.Equal(t, JobAfternoon, runs[1].Job.Name)
	assert.Equal(t, JobLogCleanup, runs[2].Job.Name)
	assert.Equal(t, time.Date(2024, 3, 19, 3, 0, 0, 0, time.UTC), runs[2].At)
	assert.Equal(t, JobDataUpdate, runs[3].Job.Name)
	assert.Equal(t, time.Date(2024, 3, 19, 7, 0, 0, 0, time.UTC), runs[3].At)
}

func TestNextSkipsWeekend(t *testing.T) {
	cfg := testConfig()
	cfg.EnablePortfolioReport = true

	// Friday 19:00.
	from := time.Date(2024, 3, 22, 19, 0, 0, 0, time.UTC)
	runs, err := Next(Jobs(cfg), from)
	require.NoError(t, err)
	require.Len(t, runs, 5)

	byName := map[string]time.Time{}
	for _, r := range runs {
		byName[r.Job.Name] = r.At
	}
	assert.Equal(t, time.Date(2024, 3, 25, 9, 30, 0, 0, time.UTC), byName[JobMorning])
	assert.Equal(t, time.Date(2024, 3, 23, 3, 0, 0, 0, time.UTC), byName[JobLogCleanup])
	assert.Equal(t, time.Date(2024, 3, 23, 18, 0, 0, 0, time.UTC), byName[JobPortfolioReport])
	assert.Equal(t, JobLogCleanup, runs[0].Job.Name)
}

func TestNextInvalidSpec(t *testing.T) {
	_, err := Next([]Job{{Name: "x", Spec: "bogus", Enabled: true}}, time.Now())
	assert.Error(t, err)
}
