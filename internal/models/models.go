// Package models provides domain models for the trading journal.
package models

// Side represents the direction of a trade.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// EmotionCategory classifies an emotion definition.
type EmotionCategory string

const (
	CategoryPositive EmotionCategory = "POSITIVE"
	CategoryNeutral  EmotionCategory = "NEUTRAL"
	CategoryNegative EmotionCategory = "NEGATIVE"
	CategoryCritical EmotionCategory = "CRITICAL"
)

// IsAdverse reports whether the category indicates a compromised
// emotional state.
func (c EmotionCategory) IsAdverse() bool {
	return c == CategoryNegative || c == CategoryCritical
}

// ComplianceStatus represents the pre-computed compliance verdict for a
// single trade. Values follow the plan-compliance wire format.
type ComplianceStatus string

const (
	ComplianceConforme    ComplianceStatus = "CONFORME"
	ComplianceForaDoPlano ComplianceStatus = "FORA_DO_PLANO"
	ComplianceNaoConforme ComplianceStatus = "NAO_CONFORME"
)

// HealthStatus is the qualitative tier derived from the emotional score.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "HEALTHY"
	StatusAttention HealthStatus = "ATTENTION"
	StatusWarning   HealthStatus = "WARNING"
	StatusCritical  HealthStatus = "CRITICAL"
)

// Trend classifies the recent direction of the emotional score series.
type Trend string

const (
	TrendImproving Trend = "IMPROVING"
	TrendStable    Trend = "STABLE"
	TrendWorsening Trend = "WORSENING"
)

// LedgerEvent is a compliance or goal/stop event attached to a ledger entry.
type LedgerEvent string

const (
	EventGoalHit  LedgerEvent = "GOAL_HIT"
	EventStopHit  LedgerEvent = "STOP_HIT"
	EventPostGoal LedgerEvent = "POST_GOAL"
	EventPostStop LedgerEvent = "POST_STOP"
	EventROFora   LedgerEvent = "RO_FORA"
	EventRRFora   LedgerEvent = "RR_FORA"
)

// IsViolation reports whether the event counts as a compliance violation
// for scoring penalties and correlation.
func (e LedgerEvent) IsViolation() bool {
	return e == EventROFora || e == EventRRFora
}
