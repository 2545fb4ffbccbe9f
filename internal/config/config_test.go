package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/unsc-scraper/internal/types"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"base_url": "http://mirror.example.org/resolutions/",
		"backend": "htmltree",
		"delay": "250ms",
		"respect_robots": false,
		"verbose": true,
		"exceptions": {"1975": {"short_year": true}}
	}`

	cfg, err := LoadConfig(writeConfig(t, "config.json", content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "http://mirror.example.org/resolutions/", cfg.BaseURL)
	assert.Equal(t, "htmltree", cfg.Backend)
	assert.Equal(t, "250ms", cfg.Delay)
	require.NotNil(t, cfg.RespectRobots)
	assert.False(t, *cfg.RespectRobots)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, types.YearException{ShortYear: true}, cfg.Exceptions[1975])
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	t.Setenv("UNSC_TEST_DB", "postgres://scraper@localhost/unsc")
	content := `
backend: browser
format: json
headless: false
database_url: ${UNSC_TEST_DB}
exceptions:
  1966:
    duplicate_tables: true
`

	cfg, err := LoadConfig(writeConfig(t, "config.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, "browser", cfg.Backend)
	assert.Equal(t, "json", cfg.Format)
	require.NotNil(t, cfg.Headless)
	assert.False(t, *cfg.Headless)
	assert.Equal(t, "postgres://scraper@localhost/unsc", cfg.DatabaseURL)
	assert.True(t, cfg.Exceptions[1966].DuplicateTables)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.yml", "backend: [unterminated"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	empty := &Config{}
	assert.NoError(t, empty.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"unknown backend", Config{Backend: "selenium"}, "Backend"},
		{"unknown format", Config{Format: "xml"}, "Format"},
		{"malformed base URL", Config{BaseURL: "not a url"}, "BaseURL"},
		{"base URL without slash", Config{BaseURL: "http://www.un.org/en/sc/documents/resolutions"}, "must end with '/'"},
		{"bad delay", Config{Delay: "soon"}, "invalid 'delay'"},
		{"negative delay", Config{Delay: "-1s"}, "non-negative"},
		{"zero timeout", Config{Timeout: "0s"}, "'timeout' must be positive"},
		{"bad exception year", Config{Exceptions: types.ExceptionTable{0: {ShortYear: true}}}, "exception year 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	off := false
	partial := Config{
		Backend:       "htmltree",
		Delay:         "1s",
		RespectRobots: &off,
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "htmltree", merged.Backend)
	assert.Equal(t, "1s", merged.Delay)
	assert.False(t, merged.RobotsEnabled())

	// Default values should fill in empty fields
	assert.Equal(t, "http://www.un.org/en/sc/documents/resolutions/", merged.BaseURL)
	assert.Equal(t, "unsc-resolutions.csv", merged.Out)
	assert.Empty(t, merged.Format)
	assert.Equal(t, "30s", merged.Timeout)
	assert.True(t, merged.HeadlessEnabled())
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Backend: "goquery"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "goquery", merged.Backend)
	assert.Empty(t, merged.BaseURL)
	assert.True(t, merged.RobotsEnabled())
}

func TestParsedDurations(t *testing.T) {
	cfg := &Config{}
	delay, err := cfg.ParsedDelay()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, delay)

	timeout, err := cfg.ParsedTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)

	cfg = &Config{Delay: "0s", Timeout: "5s"}
	delay, err = cfg.ParsedDelay()
	require.NoError(t, err)
	assert.Zero(t, delay)

	timeout, err = cfg.ParsedTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestExceptionTable(t *testing.T) {
	cfg := &Config{Exceptions: types.ExceptionTable{
		1960: {},
		1975: {ShortYear: true},
	}}

	table := cfg.ExceptionTable()

	assert.True(t, table.Lookup(1959).ShortYear)
	assert.False(t, table.Lookup(1960).DuplicateTables, "configured entry overrides the default")
	assert.True(t, table.Lookup(1964).DuplicateTables)
	assert.True(t, table.Lookup(1975).ShortYear)
}
