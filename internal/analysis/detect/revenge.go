package detect

import (
	"fmt"
	"time"

	"tradementor/internal/emotion"
	"tradementor/internal/models"
)

// Revenge flags the three revenge-trading triggers. Each trigger produces
// its own finding type and all three may fire independently for the same
// trade: re-entering too fast after a loss, trading in an explicitly
// vengeful state, and oversizing right after a loss.
func Revenge(trades []models.Trade, reg *emotion.Registry, cfg RevengeConfig) []models.Finding {
	var findings []models.Finding
	findings = append(findings, revengeRapid(trades, cfg)...)
	findings = append(findings, revengeEmotion(trades, reg)...)
	findings = append(findings, revengeSizing(trades, cfg)...)
	return findings
}

// revengeRapid finds losing trades followed by a burst of entries inside
// the configured window after the losing exit.
func revengeRapid(trades []models.Trade, cfg RevengeConfig) []models.Finding {
	window := time.Duration(cfg.WindowMinutes) * time.Minute

	var findings []models.Finding
	for i, t := range trades {
		if t.Result >= 0 || !t.HasExitTime() {
			continue
		}
		deadline := t.ExitTime.Add(window)

		ids := []string{t.ID}
		for _, next := range trades[i+1:] {
			if !next.HasEntryTime() {
				continue
			}
			if next.EntryTime.After(deadline) {
				break
			}
			if next.EntryTime.Before(t.ExitTime) {
				continue
			}
			ids = append(ids, next.ID)
		}

		if opened := len(ids) - 1; opened >= cfg.TradesInWindow {
			findings = append(findings, models.Finding{
				Type:      models.AlertRevengeRapid,
				Severity:  models.SeverityHigh,
				Message:   fmt.Sprintf("%d trades opened within %dm of a losing exit", opened, cfg.WindowMinutes),
				Timestamp: t.ExitTime,
				TradeIDs:  ids,
				Count:     opened,
			})
		}
	}
	return findings
}

// revengeEmotion flags trades whose entry emotion carries the revenge
// behavioral tag.
func revengeEmotion(trades []models.Trade, reg *emotion.Registry) []models.Finding {
	var findings []models.Finding
	for _, t := range trades {
		if reg.Pattern(t.EmotionEntry) != emotion.PatternRevenge {
			continue
		}
		ts := t.EntryTime
		if ts.IsZero() {
			ts = t.Date
		}
		findings = append(findings, models.Finding{
			Type:      models.AlertRevengeEmotion,
			Severity:  models.SeverityHigh,
			Message:   fmt.Sprintf("trade %s on %s entered in an explicitly vengeful state", t.ID, t.Ticker),
			Timestamp: ts,
			TradeIDs:  []string{t.ID},
		})
	}
	return findings
}

// revengeSizing flags a trade immediately following a loss whose size
// exceeds the previous trade's by more than the configured multiplier.
func revengeSizing(trades []models.Trade, cfg RevengeConfig) []models.Finding {
	var findings []models.Finding
	for i := 1; i < len(trades); i++ {
		prev, t := trades[i-1], trades[i]
		if prev.Result >= 0 || prev.Qty <= 0 {
			continue
		}
		if t.Qty <= prev.Qty*cfg.QtyMultiplier {
			continue
		}
		ts := t.EntryTime
		if ts.IsZero() {
			ts = t.Date
		}
		findings = append(findings, models.Finding{
			Type:      models.AlertRevengeSizing,
			Severity:  models.SeverityHigh,
			Message:   fmt.Sprintf("position size jumped from %.0f to %.0f right after a loss", prev.Qty, t.Qty),
			Timestamp: ts,
			TradeIDs:  []string{prev.ID, t.ID},
		})
	}
	return findings
}
