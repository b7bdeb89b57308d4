package models

import "time"

// Trade represents a completed journal trade. Trades are recorded by the
// student and are read-only to the analysis engine.
type Trade struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	EntryTime time.Time `json:"entryTime,omitempty"`
	ExitTime  time.Time `json:"exitTime,omitempty"`
	Ticker    string    `json:"ticker"`
	Side      Side      `json:"side"`
	Qty       float64   `json:"qty"`
	Result    float64   `json:"result"`

	// EmotionEntry and EmotionExit reference the emotion registry.
	// Emotion is a legacy alias still present in old exports; it is
	// resolved into EmotionEntry at the ledger boundary and nowhere else.
	EmotionEntry string `json:"emotionEntry,omitempty"`
	EmotionExit  string `json:"emotionExit,omitempty"`
	Emotion      string `json:"emotion,omitempty"`

	PlanID    string `json:"planId,omitempty"`
	AccountID string `json:"accountId,omitempty"`

	Compliance *Compliance `json:"compliance,omitempty"`
}

// Compliance holds per-trade compliance verdicts computed upstream.
// When present it always takes precedence over local fallback checks.
type Compliance struct {
	ROStatus ComplianceStatus `json:"roStatus,omitempty"`
	RRStatus ComplianceStatus `json:"rrStatus,omitempty"`
}

// HasEntryTime reports whether the trade carries a usable entry timestamp.
// Trades without one are excluded from time-window detection but still
// count toward category-only detectors.
func (t Trade) HasEntryTime() bool {
	return !t.EntryTime.IsZero()
}

// HasExitTime reports whether the trade carries a usable exit timestamp.
func (t Trade) HasExitTime() bool {
	return !t.ExitTime.IsZero()
}

// Plan represents a trading plan's capital and threshold configuration.
// A threshold of zero (or absent) disables the corresponding check.
type Plan struct {
	ID        string  `json:"id,omitempty"`
	PL        float64 `json:"pl"`
	CurrentPL float64 `json:"currentPl,omitempty"`

	// Goal/stop percentages. CycleGoal/CycleStop take precedence over the
	// GoalPercent/StopPercent aliases, which in turn cover the legacy
	// PeriodGoal/PeriodStop names.
	GoalPercent float64 `json:"goalPercent,omitempty"`
	StopPercent float64 `json:"stopPercent,omitempty"`
	PeriodGoal  float64 `json:"periodGoal,omitempty"`
	PeriodStop  float64 `json:"periodStop,omitempty"`
	CycleGoal   float64 `json:"cycleGoal,omitempty"`
	CycleStop   float64 `json:"cycleStop,omitempty"`

	RiskPerOperation float64 `json:"riskPerOperation,omitempty"`
	RRTarget         float64 `json:"rrTarget,omitempty"`
}

// BasePL returns the capital reference used for percentage thresholds:
// CurrentPL when set, otherwise PL. A non-positive base disables goal/stop
// threshold computation entirely.
func (p Plan) BasePL() float64 {
	if p.CurrentPL > 0 {
		return p.CurrentPL
	}
	return p.PL
}

// GoalPct resolves the effective goal percentage across the alias fields.
func (p Plan) GoalPct() float64 {
	switch {
	case p.CycleGoal > 0:
		return p.CycleGoal
	case p.GoalPercent > 0:
		return p.GoalPercent
	default:
		return p.PeriodGoal
	}
}

// StopPct resolves the effective stop percentage across the alias fields.
func (p Plan) StopPct() float64 {
	switch {
	case p.CycleStop > 0:
		return p.CycleStop
	case p.StopPercent > 0:
		return p.StopPercent
	default:
		return p.PeriodStop
	}
}
