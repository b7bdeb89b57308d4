package detect

import (
	"fmt"
	"sort"
	"time"

	"tradementor/internal/models"
)

const dayLayout = "2006-01-02"

// Overtrading buckets trades per calendar day and flags days above the
// configured count thresholds. Days past the hard limit are findings in
// their own right; days in the warning band get a lower-severity finding.
func Overtrading(trades []models.Trade, cfg OvertradingConfig) []models.Finding {
	byDay := make(map[string][]string)
	for _, t := range trades {
		day := t.Date.Format(dayLayout)
		byDay[day] = append(byDay[day], t.ID)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	var findings []models.Finding
	for _, day := range days {
		ids := byDay[day]
		count := len(ids)
		ts, _ := time.Parse(dayLayout, day)

		switch {
		case count > cfg.MaxTradesPerDay:
			findings = append(findings, models.Finding{
				Type:      models.AlertOvertrading,
				Severity:  models.SeverityHigh,
				Message:   fmt.Sprintf("%d trades on %s exceeds the daily limit of %d", count, day, cfg.MaxTradesPerDay),
				Timestamp: ts,
				TradeIDs:  ids,
				Count:     count,
			})
		case count >= cfg.WarningThreshold:
			findings = append(findings, models.Finding{
				Type:      models.AlertOvertradingWarn,
				Severity:  models.SeverityMedium,
				Message:   fmt.Sprintf("%d trades on %s is approaching the daily limit of %d", count, day, cfg.MaxTradesPerDay),
				Timestamp: ts,
				TradeIDs:  ids,
				Count:     count,
			})
		}
	}
	return findings
}
