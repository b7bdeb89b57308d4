// Package compliance cross-references plan-compliance violations against
// the emotional state recorded on the same trade. Correlation findings are
// strictly additive signal on top of the underlying ledger events, never a
// replacement for them.
package compliance

import (
	"fmt"

	"tradementor/internal/analysis/ledger"
	"tradementor/internal/emotion"
	"tradementor/internal/models"
)

// Correlate emits one finding for every ledger entry that both breached a
// compliance rule (RO_FORA or RR_FORA) and was entered in a NEGATIVE or
// CRITICAL emotional state. Correlation needs both sides: with an empty
// ledger or an empty registry it returns nil rather than guessing.
func Correlate(entries []ledger.Entry, reg *emotion.Registry) []models.Finding {
	if len(entries) == 0 || reg.Len() == 0 {
		return nil
	}

	var findings []models.Finding
	for _, e := range entries {
		violation := violationOf(e)
		if violation == "" {
			continue
		}
		def := reg.Lookup(e.EmotionEntry)
		if !def.Category.IsAdverse() {
			continue
		}

		ts := e.EntryTime
		if ts.IsZero() {
			ts = e.Date
		}
		findings = append(findings, models.Finding{
			Type:      models.AlertComplianceEmotion,
			Severity:  severityFor(def.Category),
			Message:   fmt.Sprintf("breached %s while emotionally compromised (%s)", ruleName(violation), def.Label),
			Timestamp: ts,
			TradeIDs:  []string{e.ID},
		})
	}
	return findings
}

// violationOf returns the first compliance violation on the entry, or ""
// when the trade was conforming.
func violationOf(e ledger.Entry) models.LedgerEvent {
	for _, ev := range e.Events {
		if ev.IsViolation() {
			return ev
		}
	}
	return ""
}

func ruleName(ev models.LedgerEvent) string {
	if ev == models.EventRRFora {
		return "the reward:risk target"
	}
	return "the risk-per-operation limit"
}

func severityFor(cat models.EmotionCategory) models.Severity {
	if cat == models.CategoryCritical {
		return models.SeverityCritical
	}
	return models.SeverityHigh
}
