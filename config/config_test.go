package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, SourceSQLite, cfg.Source.Type)
	assert.Equal(t, "trading.db", cfg.Source.DBPath)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 7, cfg.Schedule.RetentionDays)
	assert.NotEmpty(t, cfg.Locale.PrefsFile)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func(mod func(c *Config)) *Config {
		c := Default()
		mod(c)
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name:    "file source",
			config:  valid(func(c *Config) { c.Source = SourceConfig{Type: SourceFile, FeedPath: "feed.json"} }),
			wantErr: false,
		},
		{
			name:    "missing source type",
			config:  valid(func(c *Config) { c.Source.Type = "" }),
			wantErr: true,
			errMsg:  "source.type is required",
		},
		{
			name:    "unknown source type",
			config:  valid(func(c *Config) { c.Source.Type = "postgres" }),
			wantErr: true,
			errMsg:  "source.type must be sqlite or file",
		},
		{
			name:    "sqlite without path",
			config:  valid(func(c *Config) { c.Source.DBPath = "" }),
			wantErr: true,
			errMsg:  "source.db_path is required",
		},
		{
			name:    "file without path",
			config:  valid(func(c *Config) { c.Source = SourceConfig{Type: SourceFile} }),
			wantErr: true,
			errMsg:  "source.feed_path is required",
		},
		{
			name:    "missing prefs file",
			config:  valid(func(c *Config) { c.Locale.PrefsFile = "" }),
			wantErr: true,
			errMsg:  "locale.prefs_file is required",
		},
		{
			name:    "missing addr",
			config:  valid(func(c *Config) { c.Server.Addr = "" }),
			wantErr: true,
			errMsg:  "server.addr is required",
		},
		{
			name:    "bad shutdown timeout",
			config:  valid(func(c *Config) { c.Server.ShutdownTimeout = "soon" }),
			wantErr: true,
			errMsg:  "server.shutdown_timeout",
		},
		{
			name:    "zero retention",
			config:  valid(func(c *Config) { c.Schedule.RetentionDays = 0 }),
			wantErr: true,
			errMsg:  "schedule.retention_days must be positive",
		},
		{
			name:    "bad log level",
			config:  valid(func(c *Config) { c.Log.Level = "loud" }),
			wantErr: true,
			errMsg:  "log.level must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Source = SourceConfig{Type: SourceFile, FeedPath: "history.json"}
			cfg.Schedule.EnablePortfolioReport = true
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Source, loaded.Source)
			assert.Empty(t, loaded.Source.DBPath, "unused db_path must not come back from defaults")
			assert.Equal(t, cfg.Server, loaded.Server)
			assert.Equal(t, cfg.Schedule, loaded.Schedule)
			assert.Equal(t, cfg.Locale, loaded.Locale)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, SourceSQLite, cfg.Source.Type)
	assert.Equal(t, 7, cfg.Schedule.RetentionDays)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  type: mongo\n"), 0o644))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestShutdownTimeout(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{"5s", "5s", false},
		{"1m", "1m0s", false},
		{"", "0s", false},
		{"invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ServerConfig{ShutdownTimeout: tt.in}.ParseShutdownTimeout()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, d.String())
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"STOCKREPORT_SOURCE=file\nSTOCKREPORT_FEED=/data/history.json\nSTOCKREPORT_TRACE=true\n"), 0o644))

	// godotenv never overrides variables that are already set.
	t.Setenv(EnvSource, "")
	t.Setenv(EnvFeed, "")
	t.Setenv(EnvTrace, "")
	t.Setenv(EnvAddr, ":7070")
	os.Unsetenv(EnvSource)
	os.Unsetenv(EnvFeed)
	os.Unsetenv(EnvTrace)

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))

	assert.Equal(t, SourceFile, cfg.Source.Type)
	assert.Equal(t, "/data/history.json", cfg.Source.FeedPath)
	assert.True(t, cfg.Trace.Enabled)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvMissingFile(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")))
}
