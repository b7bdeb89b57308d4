// Package detect implements the behavioral pattern detectors: independent,
// composable scanners over a chronologically ordered trade list. Detectors
// are pure functions; they never mutate their inputs.
package detect

import "tradementor/internal/emotion"

// TiltConfig controls the tilt run scanner.
type TiltConfig struct {
	// ConsecutiveTrades is the minimum run length that counts as tilt.
	ConsecutiveTrades int `mapstructure:"consecutive_trades"`
	// MaxIntervalMinutes bounds the exit-to-next-entry gap inside a run.
	MaxIntervalMinutes int `mapstructure:"max_interval_minutes"`
	// RequireNegativeResult additionally requires every trade in the run
	// to be a loss.
	RequireNegativeResult bool `mapstructure:"require_negative_result"`
	// CriticalRunLength is the run length at which severity escalates to
	// CRITICAL.
	CriticalRunLength int `mapstructure:"critical_run_length"`
}

// RevengeConfig controls the revenge-trading triggers.
type RevengeConfig struct {
	// TradesInWindow is the trade count that makes a post-loss sequence
	// rapid.
	TradesInWindow int `mapstructure:"trades_in_window"`
	// WindowMinutes is the window after a losing exit.
	WindowMinutes int `mapstructure:"window_minutes"`
	// QtyMultiplier flags a post-loss trade whose size exceeds the
	// previous trade's by more than this factor.
	QtyMultiplier float64 `mapstructure:"qty_multiplier"`
}

// OvertradingConfig controls the daily trade-count detector.
type OvertradingConfig struct {
	MaxTradesPerDay  int `mapstructure:"max_trades_per_day"`
	WarningThreshold int `mapstructure:"warning_threshold"`
}

// FOMOConfig controls the impulsive-entry rate detector.
type FOMOConfig struct {
	// ImpulsivePatterns is the behavioral tag set counted as impulsive.
	ImpulsivePatterns []string `mapstructure:"impulsive_patterns"`
	// NotableRate is the percentage above which the rate is reported.
	NotableRate float64 `mapstructure:"notable_rate"`
}

// FlowConfig controls the inverse flow-state detector.
type FlowConfig struct {
	// MinConfidence is the positive-trade proportion (percent) required
	// to report a flow state.
	MinConfidence float64 `mapstructure:"min_confidence"`
	// MinTrades is the minimum sample size.
	MinTrades int `mapstructure:"min_trades"`
}

// Config is the detection-configuration surface. Any omitted value falls
// back to its default; out-of-range values are clamped, never errors,
// because configuration is mentor-editable and must degrade gracefully.
type Config struct {
	Tilt        TiltConfig        `mapstructure:"tilt"`
	Revenge     RevengeConfig     `mapstructure:"revenge"`
	Overtrading OvertradingConfig `mapstructure:"overtrading"`
	FOMO        FOMOConfig        `mapstructure:"fomo"`
	Flow        FlowConfig        `mapstructure:"flow"`
}

// Default returns the documented default detection configuration.
func Default() Config {
	return Config{
		Tilt: TiltConfig{
			ConsecutiveTrades:  3,
			MaxIntervalMinutes: 60,
			CriticalRunLength:  5,
		},
		Revenge: RevengeConfig{
			TradesInWindow: 2,
			WindowMinutes:  30,
			QtyMultiplier:  2.0,
		},
		Overtrading: OvertradingConfig{
			MaxTradesPerDay:  10,
			WarningThreshold: 7,
		},
		FOMO: FOMOConfig{
			ImpulsivePatterns: []string{emotion.PatternFOMO, emotion.PatternGreed},
			NotableRate:       15.0,
		},
		Flow: FlowConfig{
			MinConfidence: 70.0,
			MinTrades:     5,
		},
	}
}

// Clamped returns a copy with every value pulled to its nearest valid
// bound, filling zero values from the defaults.
func (c Config) Clamped() Config {
	def := Default()

	c.Tilt.ConsecutiveTrades = clampInt(c.Tilt.ConsecutiveTrades, 2, def.Tilt.ConsecutiveTrades)
	c.Tilt.MaxIntervalMinutes = clampInt(c.Tilt.MaxIntervalMinutes, 1, def.Tilt.MaxIntervalMinutes)
	c.Tilt.CriticalRunLength = clampInt(c.Tilt.CriticalRunLength, c.Tilt.ConsecutiveTrades, def.Tilt.CriticalRunLength)

	c.Revenge.TradesInWindow = clampInt(c.Revenge.TradesInWindow, 1, def.Revenge.TradesInWindow)
	c.Revenge.WindowMinutes = clampInt(c.Revenge.WindowMinutes, 1, def.Revenge.WindowMinutes)
	c.Revenge.QtyMultiplier = clampFloat(c.Revenge.QtyMultiplier, 1.0, def.Revenge.QtyMultiplier)

	c.Overtrading.MaxTradesPerDay = clampInt(c.Overtrading.MaxTradesPerDay, 1, def.Overtrading.MaxTradesPerDay)
	c.Overtrading.WarningThreshold = clampInt(c.Overtrading.WarningThreshold, 1, def.Overtrading.WarningThreshold)
	if c.Overtrading.WarningThreshold > c.Overtrading.MaxTradesPerDay {
		c.Overtrading.WarningThreshold = c.Overtrading.MaxTradesPerDay
	}

	if len(c.FOMO.ImpulsivePatterns) == 0 {
		c.FOMO.ImpulsivePatterns = def.FOMO.ImpulsivePatterns
	}
	c.FOMO.NotableRate = clampFloat(c.FOMO.NotableRate, 0.1, def.FOMO.NotableRate)

	c.Flow.MinConfidence = clampFloat(c.Flow.MinConfidence, 1.0, def.Flow.MinConfidence)
	c.Flow.MinTrades = clampInt(c.Flow.MinTrades, 1, def.Flow.MinTrades)

	return c
}

func clampInt(v, min, fallback int) int {
	if v == 0 {
		return fallback
	}
	if v < min {
		return min
	}
	return v
}

func clampFloat(v, min, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	if v < min {
		return min
	}
	return v
}
