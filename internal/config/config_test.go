package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradementor/internal/analysis/detect"
	"tradementor/internal/analysis/scoring"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, detect.Default(), cfg.Detection)
	assert.Equal(t, scoring.DefaultThresholds(), cfg.Statuses)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Notifications.Enabled)
	assert.False(t, cfg.Notifications.Webhook.Enabled)
	assert.NotEmpty(t, cfg.Database.Path)
}

func TestLoadOverrides(t *testing.T) {
	dir := writeConfig(t, `
logging:
  level: debug
detection:
  tilt:
    consecutive_trades: 4
  overtrading:
    max_trades_per_day: 15
status_thresholds:
  healthy: 85
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 4, cfg.Detection.Tilt.ConsecutiveTrades)
	assert.Equal(t, 15, cfg.Detection.Overtrading.MaxTradesPerDay)
	assert.Equal(t, 85.0, cfg.Statuses.Healthy)
	// Untouched keys keep their defaults.
	assert.Equal(t, detect.Default().Revenge, cfg.Detection.Revenge)
	assert.Equal(t, scoring.DefaultThresholds().Warning, cfg.Statuses.Warning)
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	dir := writeConfig(t, `
detection:
  tilt:
    consecutive_trades: 1
  revenge:
    qty_multiplier: 0.2
status_thresholds:
  healthy: 250
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Detection.Tilt.ConsecutiveTrades, "below-minimum value pulled up")
	assert.Equal(t, 1.0, cfg.Detection.Revenge.QtyMultiplier)
	assert.Equal(t, scoring.DefaultThresholds().Healthy, cfg.Statuses.Healthy, "out-of-range cutoff falls back")
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	dir := writeConfig(t, `
detection:
  tilt:
    consecutive_trades: 3
  future_detector:
    some_knob: 42
completely_unknown: true
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Detection.Tilt.ConsecutiveTrades)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := writeConfig(t, "detection: [not: a map\n")

	_, err := Load(dir)
	assert.Error(t, err)
}
