package detect

import (
	"fmt"

	"tradementor/internal/emotion"
	"tradementor/internal/models"
)

// FlowState is the inverse detector: a high proportion of trades entered
// in a POSITIVE emotional state with positive results is reported as a
// commendation with the proportion attached as confidence.
func FlowState(trades []models.Trade, reg *emotion.Registry, cfg FlowConfig) []models.Finding {
	if len(trades) < cfg.MinTrades {
		return nil
	}

	var inFlow int
	for _, t := range trades {
		if reg.Category(t.EmotionEntry) == models.CategoryPositive && t.Result > 0 {
			inFlow++
		}
	}

	confidence := float64(inFlow) / float64(len(trades)) * 100
	if confidence < cfg.MinConfidence {
		return nil
	}

	return []models.Finding{{
		Type:      models.AlertFlowState,
		Severity:  models.SeverityLow,
		Message:   fmt.Sprintf("flow state: %.0f%% of trades were wins entered in a positive state", confidence),
		Timestamp: trades[len(trades)-1].Date,
		Rate:      confidence,
		Count:     inFlow,
	}}
}

// All runs every detector over the same ordered trade view and returns the
// concatenated findings in a fixed detector order, keeping the output
// deterministic for identical inputs.
func All(trades []models.Trade, reg *emotion.Registry, cfg Config) []models.Finding {
	cfg = cfg.Clamped()

	var findings []models.Finding
	findings = append(findings, Tilt(trades, reg, cfg.Tilt)...)
	findings = append(findings, Revenge(trades, reg, cfg.Revenge)...)
	findings = append(findings, Overtrading(trades, cfg.Overtrading)...)
	findings = append(findings, FOMORate(trades, reg, cfg.FOMO)...)
	findings = append(findings, FlowState(trades, reg, cfg.Flow)...)
	return findings
}
