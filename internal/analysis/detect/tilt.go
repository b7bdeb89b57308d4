package detect

import (
	"fmt"
	"time"

	"tradementor/internal/emotion"
	"tradementor/internal/models"
)

// Tilt scans for runs of consecutive trades executed in a NEGATIVE or
// CRITICAL emotional state, each separated from the previous trade's exit
// by no more than the configured interval. A maximal run is reported once,
// spanning its full extent; overlapping sub-runs are never reported.
func Tilt(trades []models.Trade, reg *emotion.Registry, cfg TiltConfig) []models.Finding {
	var findings []models.Finding
	var run []models.Trade

	flush := func() {
		if len(run) >= cfg.ConsecutiveTrades {
			findings = append(findings, tiltFinding(run, cfg))
		}
		run = run[:0]
	}

	for _, t := range trades {
		if !tiltCandidate(t, reg, cfg) {
			flush()
			continue
		}
		if len(run) > 0 && !withinInterval(run[len(run)-1], t, cfg.MaxIntervalMinutes) {
			flush()
		}
		run = append(run, t)
	}
	flush()

	return findings
}

// tiltCandidate reports whether a trade can belong to a tilt run.
func tiltCandidate(t models.Trade, reg *emotion.Registry, cfg TiltConfig) bool {
	if !reg.Category(t.EmotionEntry).IsAdverse() {
		return false
	}
	if cfg.RequireNegativeResult && t.Result >= 0 {
		return false
	}
	return true
}

// withinInterval checks the exit-to-next-entry gap. Trades without usable
// timestamps cannot anchor a time window, so they break the run.
func withinInterval(prev, next models.Trade, maxMinutes int) bool {
	if !prev.HasExitTime() || !next.HasEntryTime() {
		return false
	}
	gap := next.EntryTime.Sub(prev.ExitTime)
	return gap <= time.Duration(maxMinutes)*time.Minute
}

func tiltFinding(run []models.Trade, cfg TiltConfig) models.Finding {
	severity := models.SeverityMedium
	switch {
	case len(run) >= cfg.CriticalRunLength:
		severity = models.SeverityCritical
	case len(run) > cfg.ConsecutiveTrades:
		severity = models.SeverityHigh
	}

	ids := make([]string, len(run))
	for i, t := range run {
		ids[i] = t.ID
	}

	last := run[len(run)-1]
	ts := last.EntryTime
	if ts.IsZero() {
		ts = last.Date
	}

	return models.Finding{
		Type:      models.AlertTilt,
		Severity:  severity,
		Message:   fmt.Sprintf("%d consecutive trades executed in a negative emotional state within %dm of each other", len(run), cfg.MaxIntervalMinutes),
		Timestamp: ts,
		TradeIDs:  ids,
		Count:     len(run),
	}
}
