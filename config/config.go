package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source types.
const (
	SourceSQLite = "sqlite"
	SourceFile   = "file"
)

// Config is the complete stockreport configuration.
type Config struct {
	Source   SourceConfig   `json:"source" yaml:"source"`
	Locale   LocaleConfig   `json:"locale" yaml:"locale"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Trace    TraceConfig    `json:"trace" yaml:"trace"`
}

// SourceConfig says where the trade history comes from.
type SourceConfig struct {
	Type     string `json:"type" yaml:"type"` // "sqlite" or "file"
	DBPath   string `json:"db_path" yaml:"db_path"`
	FeedPath string `json:"feed_path" yaml:"feed_path"`
}

// LocaleConfig contains display language settings.
type LocaleConfig struct {
	// PrefsFile persists the chosen language between runs.
	PrefsFile string `json:"prefs_file" yaml:"prefs_file"`
}

// ServerConfig contains dashboard server parameters.
type ServerConfig struct {
	Addr            string `json:"addr" yaml:"addr"`
	ShutdownTimeout string `json:"shutdown_timeout" yaml:"shutdown_timeout"` // e.g. "5s"
}

// ParseShutdownTimeout converts the timeout string to a time.Duration.
func (s ServerConfig) ParseShutdownTimeout() (time.Duration, error) {
	if s.ShutdownTimeout == "" {
		return 0, nil
	}
	return time.ParseDuration(s.ShutdownTimeout)
}

// ScheduleConfig describes where the batch pipeline lives so the crontab
// can be rendered for this machine.
type ScheduleConfig struct {
	ProjectDir            string `json:"project_dir" yaml:"project_dir"`
	LogDir                string `json:"log_dir" yaml:"log_dir"`
	Orchestrator          string `json:"orchestrator" yaml:"orchestrator"`
	UpdateScript          string `json:"update_script" yaml:"update_script"`
	ReportScript          string `json:"report_script" yaml:"report_script"`
	RetentionDays         int    `json:"retention_days" yaml:"retention_days"`
	EnablePortfolioReport bool   `json:"enable_portfolio_report" yaml:"enable_portfolio_report"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level       string `json:"level" yaml:"level"` // debug|info|warn|error
	Development bool   `json:"development" yaml:"development"`
}

// TraceConfig toggles OpenTelemetry span export.
type TraceConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Default returns a configuration that reads ./trading.db.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Type:   SourceSQLite,
			DBPath: "trading.db",
		},
		Locale: LocaleConfig{
			PrefsFile: defaultPrefsFile(),
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "5s",
		},
		Schedule: ScheduleConfig{
			ProjectDir:    ".",
			LogDir:        "logs",
			Orchestrator:  "stock_analysis_orchestrator.py",
			UpdateScript:  "update_stock_data.py",
			ReportScript:  "portfolio_report.py",
			RetentionDays: 7,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultPrefsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".stockreport.yaml"
	}
	return filepath.Join(dir, "stockreport", "preferences.yaml")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceSQLite:
		if c.Source.DBPath == "" {
			return errors.New("source.db_path is required for sqlite sources")
		}
	case SourceFile:
		if c.Source.FeedPath == "" {
			return errors.New("source.feed_path is required for file sources")
		}
	case "":
		return errors.New("source.type is required")
	default:
		return fmt.Errorf("source.type must be sqlite or file, got %q", c.Source.Type)
	}

	if c.Locale.PrefsFile == "" {
		return errors.New("locale.prefs_file is required")
	}

	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if _, err := c.Server.ParseShutdownTimeout(); err != nil {
		return fmt.Errorf("server.shutdown_timeout: %w", err)
	}

	if c.Schedule.RetentionDays <= 0 {
		return errors.New("schedule.retention_days must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug|info|warn|error, got %q", c.Log.Level)
	}

	return nil
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
// and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Environment overrides applied by ApplyEnv.
const (
	EnvSource     = "STOCKREPORT_SOURCE"
	EnvDB         = "STOCKREPORT_DB"
	EnvFeed       = "STOCKREPORT_FEED"
	EnvPrefs      = "STOCKREPORT_PREFS"
	EnvAddr       = "STOCKREPORT_ADDR"
	EnvLogLevel   = "STOCKREPORT_LOG_LEVEL"
	EnvTrace      = "STOCKREPORT_TRACE"
	EnvProjectDir = "STOCKREPORT_PROJECT_DIR"
)

// ApplyEnv loads dotenv files (".env" when none are given; a missing
// default file is not an error) and then applies STOCKREPORT_* overrides.
func (c *Config) ApplyEnv(files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}

	if v := os.Getenv(EnvSource); v != "" {
		c.Source.Type = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.Source.DBPath = v
	}
	if v := os.Getenv(EnvFeed); v != "" {
		c.Source.FeedPath = v
	}
	if v := os.Getenv(EnvPrefs); v != "" {
		c.Locale.PrefsFile = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvTrace); v != "" {
		c.Trace.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv(EnvProjectDir); v != "" {
		c.Schedule.ProjectDir = v
	}
	return nil
}
