// Package config provides configuration management for the journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"tradementor/internal/analysis/detect"
	"tradementor/internal/analysis/scoring"
)

// Config holds all application configuration.
type Config struct {
	Database      DatabaseConfig           `mapstructure:"database"`
	Logging       LoggingConfig            `mapstructure:"logging"`
	Notifications NotificationConfig       `mapstructure:"notifications"`
	Detection     detect.Config            `mapstructure:"detection"`
	Statuses      scoring.StatusThresholds `mapstructure:"status_thresholds"`
}

// DatabaseConfig holds persistence configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// NotificationConfig holds notification configuration.
type NotificationConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Webhook WebhookConfig `mapstructure:"webhook"`
}

// WebhookConfig holds webhook notification configuration.
type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tradementor"
	}
	return filepath.Join(home, ".config", "tradementor")
}

// Load loads configuration from the specified directory, falling back to
// the default directory. A missing config file is not an error: every key
// has a documented default and unknown keys in the file are ignored.
// Out-of-range detection values are clamped, never rejected, since the
// file is mentor-editable.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Detection = cfg.Detection.Clamped()
	cfg.Statuses = cfg.Statuses.Clamped()
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("database.path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.webhook.enabled", false)

	det := detect.Default()
	v.SetDefault("detection.tilt.consecutive_trades", det.Tilt.ConsecutiveTrades)
	v.SetDefault("detection.tilt.max_interval_minutes", det.Tilt.MaxIntervalMinutes)
	v.SetDefault("detection.tilt.require_negative_result", det.Tilt.RequireNegativeResult)
	v.SetDefault("detection.tilt.critical_run_length", det.Tilt.CriticalRunLength)
	v.SetDefault("detection.revenge.trades_in_window", det.Revenge.TradesInWindow)
	v.SetDefault("detection.revenge.window_minutes", det.Revenge.WindowMinutes)
	v.SetDefault("detection.revenge.qty_multiplier", det.Revenge.QtyMultiplier)
	v.SetDefault("detection.overtrading.max_trades_per_day", det.Overtrading.MaxTradesPerDay)
	v.SetDefault("detection.overtrading.warning_threshold", det.Overtrading.WarningThreshold)
	v.SetDefault("detection.fomo.impulsive_patterns", det.FOMO.ImpulsivePatterns)
	v.SetDefault("detection.fomo.notable_rate", det.FOMO.NotableRate)
	v.SetDefault("detection.flow.min_confidence", det.Flow.MinConfidence)
	v.SetDefault("detection.flow.min_trades", det.Flow.MinTrades)

	th := scoring.DefaultThresholds()
	v.SetDefault("status_thresholds.healthy", th.Healthy)
	v.SetDefault("status_thresholds.attention", th.Attention)
	v.SetDefault("status_thresholds.warning", th.Warning)
	v.SetDefault("status_thresholds.violation_penalty", th.ViolationPenalty)
}
