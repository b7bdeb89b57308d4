// Package analysis provides the behavioral analysis pipeline: ledger
// construction, pattern detection, emotional scoring, compliance
// correlation and alert aggregation over a student's trade history.
//
// Every function here is a pure function of its inputs. Re-running with
// the same trades, plan, registry and configuration produces identical
// output; callers decide when to invoke and how to memoize.
package analysis

import (
	"time"

	"tradementor/internal/analysis/alerts"
	"tradementor/internal/analysis/compliance"
	"tradementor/internal/analysis/detect"
	"tradementor/internal/analysis/ledger"
	"tradementor/internal/analysis/scoring"
	"tradementor/internal/emotion"
	"tradementor/internal/models"
)

// Input is everything one analysis invocation consumes. Persisted carries
// alerts already written by a previous run so the aggregator can suppress
// duplicates; the engine never reads back its own writes within one
// invocation.
type Input struct {
	StudentID string
	Trades    []models.Trade
	Plan      models.Plan
	Registry  *emotion.Registry
	Config    detect.Config
	Statuses  scoring.StatusThresholds
	Ledger    ledger.Options
	Persisted []models.Alert

	// Now stamps the synthetic status alert. Zero means time.Now; tests
	// pin it for determinism.
	Now time.Time
}

// Metrics are the simple aggregates reported alongside the analysis.
type Metrics struct {
	TotalTrades int     `json:"totalTrades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"winRate"`
	NetResult   float64 `json:"netResult"`
	Violations  int     `json:"violations"`
}

// Result is the full pipeline output: plain, JSON-serializable structures
// with no methods required to render them.
type Result struct {
	Ledger      []ledger.Entry       `json:"ledger"`
	Findings    []models.Finding     `json:"findings,omitempty"`
	Score       scoring.PeriodScore  `json:"score"`
	DailyScores []scoring.DailyScore `json:"dailyScores,omitempty"`
	Status      models.HealthStatus  `json:"status"`
	Metrics     Metrics              `json:"metrics"`
	Alerts      []models.Alert       `json:"alerts,omitempty"`
}

// Analyze runs the full pipeline: trades + plan + registry -> ledger ->
// {detectors, scoring} -> correlator -> aggregator. Missing data is a
// normal steady state, not an error: an empty trade set yields an empty
// ledger, score 100 and HEALTHY status.
func Analyze(in Input) *Result {
	reg := in.Registry
	if reg == nil {
		reg = emotion.NewRegistry(nil)
	}

	led := ledger.Build(in.Trades, in.Plan, in.Ledger)
	trades := ledger.Trades(led)

	findings := detect.All(trades, reg, in.Config)
	findings = append(findings, compliance.Correlate(led, reg)...)

	scorer := scoring.NewScorer(reg)
	score := scorer.ScorePeriod(trades)
	daily := scorer.DailyScores(trades)

	violations := ledger.Violations(led)
	status := scoring.StudentStatus(score.Score, violations, in.Statuses)

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	fresh := alerts.FromFindings(in.StudentID, findings)
	if statusAlert := alerts.StatusAlert(in.StudentID, status, now); statusAlert != nil {
		fresh = append(fresh, *statusAlert)
	}

	return &Result{
		Ledger:      led,
		Findings:    findings,
		Score:       score,
		DailyScores: daily,
		Status:      status,
		Metrics:     buildMetrics(trades, violations),
		Alerts:      alerts.Aggregate(in.Persisted, fresh),
	}
}

func buildMetrics(trades []models.Trade, violations int) Metrics {
	m := Metrics{TotalTrades: len(trades), Violations: violations}
	for _, t := range trades {
		m.NetResult += t.Result
		if t.Result > 0 {
			m.Wins++
		} else if t.Result < 0 {
			m.Losses++
		}
	}
	if m.TotalTrades > 0 {
		m.WinRate = float64(m.Wins) / float64(m.TotalTrades) * 100
	}
	return m
}
