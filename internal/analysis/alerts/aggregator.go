// Package alerts merges detector findings, correlator output and status
// transitions into one deduplicated, severity-sorted alert list.
package alerts

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"tradementor/internal/models"
)

// FromFindings adapts findings into alerts for the given student. The
// flow-state commendation is informational and is not turned into an
// alert.
func FromFindings(studentID string, findings []models.Finding) []models.Alert {
	out := make([]models.Alert, 0, len(findings))
	for _, f := range findings {
		if f.Type == models.AlertFlowState {
			continue
		}
		out = append(out, models.Alert{
			ID:        uuid.NewString(),
			StudentID: studentID,
			Type:      f.Type,
			Severity:  f.Severity,
			Message:   f.Message,
			Timestamp: f.Timestamp,
		})
	}
	return out
}

// StatusAlert returns the synthetic alert emitted when the derived status
// is CRITICAL, or nil for any other tier.
func StatusAlert(studentID string, status models.HealthStatus, now time.Time) *models.Alert {
	if status != models.StatusCritical {
		return nil
	}
	return &models.Alert{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Type:      models.AlertStatusCritical,
		Severity:  models.SeverityCritical,
		Message:   "emotional health score is in the critical tier",
		Timestamp: now,
	}
}

// Aggregate merges persisted alerts with freshly computed ones. When both
// sources carry an alert for the same (student, type) pair the persisted
// one wins and the fresh one is suppressed, so the system of record never
// spams duplicates. The result is stable-sorted by severity rank; ties
// keep the merge insertion order. Aggregate is idempotent over its output.
func Aggregate(persisted, fresh []models.Alert) []models.Alert {
	merged := make([]models.Alert, 0, len(persisted)+len(fresh))
	seen := make(map[string]bool, len(persisted)+len(fresh))

	for _, a := range persisted {
		if seen[a.DedupKey()] {
			continue
		}
		seen[a.DedupKey()] = true
		merged = append(merged, a)
	}
	for _, a := range fresh {
		if seen[a.DedupKey()] {
			continue
		}
		seen[a.DedupKey()] = true
		merged = append(merged, a)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Severity.Rank() < merged[j].Severity.Rank()
	})
	return merged
}
