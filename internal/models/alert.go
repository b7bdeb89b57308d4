package models

import "time"

// Severity ranks alerts and findings. Lower rank sorts first.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Rank returns the sort rank of the severity (CRITICAL=0 .. LOW=3).
// Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// AlertType identifies the source pattern of an alert or finding.
type AlertType string

const (
	AlertTilt              AlertType = "TILT"
	AlertRevengeRapid      AlertType = "REVENGE_RAPID_SEQUENCE"
	AlertRevengeEmotion    AlertType = "REVENGE_EXPLICIT_EMOTION"
	AlertRevengeSizing     AlertType = "REVENGE_SIZE_ESCALATION"
	AlertOvertrading       AlertType = "OVERTRADING"
	AlertOvertradingWarn   AlertType = "OVERTRADING_WARNING"
	AlertFOMORate          AlertType = "FOMO_RATE"
	AlertFlowState         AlertType = "FLOW_STATE"
	AlertComplianceEmotion AlertType = "COMPLIANCE_EMOTION"
	AlertStatusCritical    AlertType = "STATUS_CRITICAL"
)

// Finding is an immutable detector or correlator result. It references the
// trades involved rather than prose-only output so callers can render or
// persist it however they need.
type Finding struct {
	Type      AlertType `json:"type"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	TradeIDs  []string  `json:"tradeIds,omitempty"`

	// Rate carries the detection rate for rate-based findings (FOMO) and
	// the confidence percentage for flow-state findings.
	Rate  float64 `json:"rate,omitempty"`
	Count int     `json:"count,omitempty"`
}

// Alert is the aggregator output, shaped for the notification store.
type Alert struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Type      AlertType `json:"type"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// DedupKey returns the aggregator deduplication key: one alert per
// (student, type) pair survives the merge.
func (a Alert) DedupKey() string {
	return a.StudentID + "|" + string(a.Type)
}
