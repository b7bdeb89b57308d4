package analysis

import (
	"reflect"
	"testing"
	"time"

	"tradementor/internal/analysis/detect"
	"tradementor/internal/analysis/scoring"
	"tradementor/internal/emotion"
	"tradementor/internal/models"
)

var pinnedNow = time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)

func hasAlertType(alerts []models.Alert, typ models.AlertType) bool {
	for _, a := range alerts {
		if a.Type == typ {
			return true
		}
	}
	return false
}

func hasFindingType(findings []models.Finding, typ models.AlertType) bool {
	for _, f := range findings {
		if f.Type == typ {
			return true
		}
	}
	return false
}

// TestAnalyzeTiltSession runs a session of three consecutive losing trades
// in a negative emotional state, ten minutes apart.
func TestAnalyzeTiltSession(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return time.Date(2024, 3, 4, h, m, 0, 0, time.UTC)
	}

	in := Input{
		StudentID: "aluno-1",
		Registry:  emotion.DefaultRegistry(),
		Config:    detect.Default(),
		Statuses:  scoring.DefaultThresholds(),
		Now:       pinnedNow,
		Trades: []models.Trade{
			{ID: "t1", Date: day, EntryTime: at(10, 0), ExitTime: at(10, 5), EmotionEntry: "frustrado", Result: -200, Qty: 1},
			{ID: "t2", Date: day, EntryTime: at(10, 15), ExitTime: at(10, 20), EmotionEntry: "raiva", Result: -100, Qty: 1},
			{ID: "t3", Date: day, EntryTime: at(10, 30), ExitTime: at(10, 35), EmotionEntry: "raiva", Result: -100, Qty: 1},
		},
	}

	res := Analyze(in)

	var tilt *models.Finding
	for i, f := range res.Findings {
		if f.Type == models.AlertTilt {
			tilt = &res.Findings[i]
		}
	}
	if tilt == nil {
		t.Fatal("expected a tilt finding for 3 adverse trades 10m apart")
	}
	if tilt.Severity.Rank() > models.SeverityMedium.Rank() {
		t.Errorf("tilt severity = %s, want at least MEDIUM", tilt.Severity)
	}
	if tilt.Count != 3 {
		t.Errorf("tilt run length = %d, want 3", tilt.Count)
	}

	// Mean raw score is -2, well into the bottom of the scale.
	if res.Score.Score >= 30 {
		t.Errorf("period score = %f, want < 30", res.Score.Score)
	}
	if res.Status != models.StatusWarning && res.Status != models.StatusCritical {
		t.Errorf("status = %s, want WARNING or CRITICAL", res.Status)
	}

	if !hasAlertType(res.Alerts, models.AlertTilt) {
		t.Error("tilt finding did not surface as an alert")
	}
	if res.Metrics.Losses != 3 || res.Metrics.Wins != 0 {
		t.Errorf("metrics = %+v, want 3 losses", res.Metrics)
	}
}

// TestAnalyzeGoalCrossing runs a winning sequence against a plan whose cycle
// goal is crossed mid-sequence.
func TestAnalyzeGoalCrossing(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}

	in := Input{
		StudentID: "aluno-2",
		Registry:  emotion.DefaultRegistry(),
		Config:    detect.Default(),
		Statuses:  scoring.DefaultThresholds(),
		Now:       pinnedNow,
		Plan:      models.Plan{PL: 10000, CycleGoal: 5},
		Trades: []models.Trade{
			{ID: "t1", Date: day(1), EmotionEntry: "calmo", Result: 200},
			{ID: "t2", Date: day(2), EmotionEntry: "calmo", Result: 200},
			{ID: "t3", Date: day(3), EmotionEntry: "confiante", Result: 150},
			{ID: "t4", Date: day(4), EmotionEntry: "confiante", Result: 50},
		},
	}

	res := Analyze(in)

	if !res.Ledger[2].HasEvent(models.EventGoalHit) {
		t.Errorf("expected GOAL_HIT on the third entry, events: %v", res.Ledger[2].Events)
	}
	if !res.Ledger[3].HasEvent(models.EventPostGoal) {
		t.Errorf("expected POST_GOAL on the fourth entry, events: %v", res.Ledger[3].Events)
	}
	if res.Status != models.StatusHealthy {
		t.Errorf("status = %s, want HEALTHY", res.Status)
	}
	if hasAlertType(res.Alerts, models.AlertStatusCritical) {
		t.Error("healthy session produced a critical status alert")
	}
	if res.Metrics.NetResult != 600 {
		t.Errorf("net result = %f, want 600", res.Metrics.NetResult)
	}
}

// TestAnalyzeEmptyHistory verifies the steady state for a student with no
// trades yet.
func TestAnalyzeEmptyHistory(t *testing.T) {
	in := Input{
		StudentID: "aluno-novo",
		Registry:  emotion.DefaultRegistry(),
		Config:    detect.Default(),
		Statuses:  scoring.DefaultThresholds(),
		Now:       pinnedNow,
	}

	res := Analyze(in)

	if len(res.Ledger) != 0 {
		t.Errorf("ledger = %v, want empty", res.Ledger)
	}
	if res.Ledger == nil {
		t.Error("ledger must be an empty slice, not nil")
	}
	if res.Score.Score != 100 {
		t.Errorf("score = %f, want 100", res.Score.Score)
	}
	if res.Status != models.StatusHealthy {
		t.Errorf("status = %s, want HEALTHY", res.Status)
	}
	if res.Score.Trend != models.TrendStable {
		t.Errorf("trend = %s, want STABLE", res.Score.Trend)
	}
	if len(res.Findings) != 0 || len(res.Alerts) != 0 {
		t.Errorf("findings/alerts not empty: %v / %v", res.Findings, res.Alerts)
	}
}

// TestAnalyzeComplianceCorrelation checks that a violating trade entered in
// an adverse state produces the correlation finding and its alert.
func TestAnalyzeComplianceCorrelation(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	in := Input{
		StudentID: "aluno-3",
		Registry:  emotion.DefaultRegistry(),
		Config:    detect.Default(),
		Statuses:  scoring.DefaultThresholds(),
		Now:       pinnedNow,
		Trades: []models.Trade{
			{
				ID: "t1", Date: day, EmotionEntry: "raiva", Result: -500, Qty: 1,
				Compliance: &models.Compliance{ROStatus: models.ComplianceForaDoPlano},
			},
			{ID: "t2", Date: day, EmotionEntry: "calmo", Result: 100, Qty: 1},
		},
	}

	res := Analyze(in)

	if !hasFindingType(res.Findings, models.AlertComplianceEmotion) {
		t.Fatal("expected a compliance-emotion correlation finding")
	}
	if !hasAlertType(res.Alerts, models.AlertComplianceEmotion) {
		t.Error("correlation finding did not surface as an alert")
	}
	if res.Metrics.Violations != 1 {
		t.Errorf("violations = %d, want 1", res.Metrics.Violations)
	}
}

// TestAnalyzeStatusAlertAndDedup checks the synthetic critical-status alert
// and that a persisted alert suppresses the fresh duplicate.
func TestAnalyzeStatusAlertAndDedup(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	trades := []models.Trade{
		{ID: "t1", Date: day, EmotionEntry: "vinganca", Result: -300, Qty: 1},
		{ID: "t2", Date: day, EmotionEntry: "panico", Result: -200, Qty: 1},
	}

	in := Input{
		StudentID: "aluno-4",
		Trades:    trades,
		Registry:  emotion.DefaultRegistry(),
		Config:    detect.Default(),
		Statuses:  scoring.DefaultThresholds(),
		Now:       pinnedNow,
	}

	res := Analyze(in)
	if res.Status != models.StatusCritical {
		t.Fatalf("status = %s, want CRITICAL (mean raw -4)", res.Status)
	}
	if !hasAlertType(res.Alerts, models.AlertStatusCritical) {
		t.Fatal("critical status produced no alert")
	}

	// Re-run with the previous output persisted: same alert types, but the
	// persisted IDs win.
	in.Persisted = res.Alerts
	res2 := Analyze(in)

	if len(res2.Alerts) != len(res.Alerts) {
		t.Fatalf("alert count changed on re-run: %d -> %d", len(res.Alerts), len(res2.Alerts))
	}
	for i, a := range res2.Alerts {
		if a.ID != res.Alerts[i].ID {
			t.Errorf("alert %d: persisted ID %s replaced by %s", i, res.Alerts[i].ID, a.ID)
		}
	}
}

// TestAnalyzeDeterministic verifies that two runs over the same input agree
// on everything except the generated alert IDs.
func TestAnalyzeDeterministic(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return time.Date(2024, 3, 4, h, m, 0, 0, time.UTC)
	}

	in := Input{
		StudentID: "aluno-5",
		Registry:  emotion.DefaultRegistry(),
		Config:    detect.Default(),
		Statuses:  scoring.DefaultThresholds(),
		Now:       pinnedNow,
		Plan:      models.Plan{PL: 5000, CycleGoal: 2, CycleStop: 2, RiskPerOperation: 3},
		Trades: []models.Trade{
			{ID: "t1", Date: day, EntryTime: at(9, 0), ExitTime: at(9, 10), EmotionEntry: "ansioso", Result: -150, Qty: 2},
			{ID: "t2", Date: day, EntryTime: at(9, 20), ExitTime: at(9, 30), EmotionEntry: "raiva", Result: -100, Qty: 5},
			{ID: "t3", Date: day, EntryTime: at(10, 0), ExitTime: at(10, 15), EmotionEntry: "calmo", Result: 300, Qty: 2},
		},
	}

	first := Analyze(in)
	second := Analyze(in)

	assertEqual := func(name string, a, b interface{}) {
		t.Helper()
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s differs between runs:\n%v\n%v", name, a, b)
		}
	}
	assertEqual("ledger", first.Ledger, second.Ledger)
	assertEqual("findings", first.Findings, second.Findings)
	assertEqual("score", first.Score, second.Score)
	assertEqual("daily scores", first.DailyScores, second.DailyScores)
	assertEqual("metrics", first.Metrics, second.Metrics)
	if first.Status != second.Status {
		t.Errorf("status differs: %s vs %s", first.Status, second.Status)
	}
	if len(first.Alerts) != len(second.Alerts) {
		t.Fatalf("alert count differs: %d vs %d", len(first.Alerts), len(second.Alerts))
	}
	for i := range first.Alerts {
		a, b := first.Alerts[i], second.Alerts[i]
		if a.Type != b.Type || a.Severity != b.Severity || a.Message != b.Message {
			t.Errorf("alert %d differs: %+v vs %+v", i, a, b)
		}
	}
}
