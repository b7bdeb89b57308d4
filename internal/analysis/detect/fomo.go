package detect

import (
	"fmt"

	"tradementor/internal/emotion"
	"tradementor/internal/models"
)

// FOMORate reports the share of trades entered under an impulsive
// behavioral tag (FOMO, greed). The result is a single rate finding, not
// one finding per trade, and only when the rate clears the notable
// threshold.
func FOMORate(trades []models.Trade, reg *emotion.Registry, cfg FOMOConfig) []models.Finding {
	if len(trades) == 0 {
		return nil
	}

	impulsive := make(map[string]bool, len(cfg.ImpulsivePatterns))
	for _, p := range cfg.ImpulsivePatterns {
		impulsive[p] = true
	}

	var count int
	for _, t := range trades {
		if impulsive[reg.Pattern(t.EmotionEntry)] {
			count++
		}
	}

	rate := float64(count) / float64(len(trades)) * 100
	if rate <= cfg.NotableRate {
		return nil
	}

	severity := models.SeverityMedium
	if rate >= cfg.NotableRate*2 {
		severity = models.SeverityHigh
	}

	return []models.Finding{{
		Type:      models.AlertFOMORate,
		Severity:  severity,
		Message:   fmt.Sprintf("%.1f%% of trades entered on impulse (FOMO/greed), above the %.0f%% threshold", rate, cfg.NotableRate),
		Timestamp: trades[len(trades)-1].Date,
		Rate:      rate,
		Count:     count,
	}}
}
