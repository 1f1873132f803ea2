package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examdesk/internal/countdown"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, countdown.DefaultThresholds(), cfg.Thresholds())
	assert.Empty(t, cfg.DBPath())
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_Values(t *testing.T) {
	path := writeConfig(t, `
[timer]
low = "20m"
critical = "5m"
urgent = "90s"

[store]
db = "/tmp/exams.db"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, countdown.Thresholds{Low: 1200, Critical: 300, Urgent: 90}, cfg.Thresholds())
	assert.Equal(t, "/tmp/exams.db", cfg.DBPath())
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	path := writeConfig(t, `
[timer]
low = "soon"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	th := cfg.Thresholds()
	assert.Equal(t, 1800, th.Low)
	assert.Equal(t, 600, th.Critical)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", "[timer\nlow = 1"},
		{"unknown key", "[timer]\nwarn = \"1m\"\n"},
		{"tick is not configurable", "[timer]\ntick = \"100ms\"\n"},
		{"wrong type", "[timer]\nlow = 5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDuration(t *testing.T) {
	s := func(v string) *string { return &v }
	assert.Equal(t, time.Minute, Duration(nil, time.Minute))
	assert.Equal(t, time.Minute, Duration(s(""), time.Minute))
	assert.Equal(t, 2*time.Hour, Duration(s("2h"), time.Minute))
	assert.Equal(t, time.Minute, Duration(s("bogus"), time.Minute))
}

func TestDefaultConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "examdesk", "config.toml"), DefaultConfigPath())
}
