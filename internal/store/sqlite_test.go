package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradementor/internal/emotion"
	apperrors "tradementor/internal/errors"
	"tradementor/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTradeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := &models.Trade{
		ID:           "t1",
		Date:         time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		EntryTime:    time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		ExitTime:     time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC),
		Ticker:       "WINM24",
		Side:         models.SideLong,
		Qty:          2,
		Result:       -150.50,
		EmotionEntry: "ansioso",
		EmotionExit:  "frustrado",
		PlanID:       "plan-1",
		Compliance:   &models.Compliance{ROStatus: models.ComplianceForaDoPlano, RRStatus: models.ComplianceConforme},
	}
	require.NoError(t, s.SaveTrade(ctx, "aluno-1", trade))

	got, err := s.GetTrades(ctx, "aluno-1", TradeFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, trade.ID, got[0].ID)
	assert.Equal(t, trade.Ticker, got[0].Ticker)
	assert.Equal(t, trade.Side, got[0].Side)
	assert.Equal(t, trade.Qty, got[0].Qty)
	assert.Equal(t, trade.Result, got[0].Result)
	assert.Equal(t, trade.EmotionEntry, got[0].EmotionEntry)
	assert.Equal(t, trade.EmotionExit, got[0].EmotionExit)
	assert.True(t, got[0].Date.Equal(trade.Date))
	assert.True(t, got[0].EntryTime.Equal(trade.EntryTime))
	assert.True(t, got[0].ExitTime.Equal(trade.ExitTime))
	require.NotNil(t, got[0].Compliance)
	assert.Equal(t, models.ComplianceForaDoPlano, got[0].Compliance.ROStatus)
}

func TestTradeLegacyEmotionPersistedCanonically(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := &models.Trade{
		ID:      "legacy",
		Date:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Ticker:  "WDOM24",
		Side:    models.SideShort,
		Emotion: "raiva",
	}
	require.NoError(t, s.SaveTrade(ctx, "aluno-1", trade))

	got, err := s.GetTrades(ctx, "aluno-1", TradeFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "raiva", got[0].EmotionEntry)
}

func TestGetTradesFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	for i, tr := range []*models.Trade{
		{ID: "t1", Date: day(1), Ticker: "WINM24", PlanID: "p1"},
		{ID: "t2", Date: day(10), Ticker: "WDOM24", PlanID: "p1"},
		{ID: "t3", Date: day(20), Ticker: "WINM24", PlanID: "p2"},
	} {
		tr.Side = models.SideLong
		require.NoError(t, s.SaveTrade(ctx, "aluno-1", tr), "trade %d", i)
	}
	// Another student's trade must never leak into the result.
	require.NoError(t, s.SaveTrade(ctx, "aluno-2", &models.Trade{ID: "x", Date: day(10), Ticker: "WINM24", Side: models.SideLong}))

	tests := []struct {
		name   string
		filter TradeFilter
		want   []string
	}{
		{"no filter", TradeFilter{}, []string{"t1", "t2", "t3"}},
		{"by ticker", TradeFilter{Ticker: "WINM24"}, []string{"t1", "t3"}},
		{"by plan", TradeFilter{PlanID: "p1"}, []string{"t1", "t2"}},
		{"by date range", TradeFilter{StartDate: day(5), EndDate: day(15)}, []string{"t2"}},
		{"with limit", TradeFilter{Limit: 2}, []string{"t1", "t2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.GetTrades(ctx, "aluno-1", tt.filter)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, tr := range got {
				ids[i] = tr.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestPlanRoundTripAndNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	plan := &models.Plan{
		ID: "p1", PL: 10000, CurrentPL: 10500,
		CycleGoal: 5, CycleStop: 3, RiskPerOperation: 2, RRTarget: 2,
	}
	require.NoError(t, s.SavePlan(ctx, "aluno-1", plan))

	got, err := s.GetPlan(ctx, "aluno-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, plan, got)

	_, err = s.GetPlan(ctx, "aluno-1", "missing")
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)

	_, err = s.GetPlan(ctx, "aluno-2", "p1")
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound, "plans are scoped per student")
}

func TestListStudents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids, err := s.ListStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveTrade(ctx, "beto", &models.Trade{ID: "t1", Date: day, Side: models.SideLong}))
	require.NoError(t, s.SaveTrade(ctx, "ana", &models.Trade{ID: "t2", Date: day, Side: models.SideLong}))
	require.NoError(t, s.SaveTrade(ctx, "ana", &models.Trade{ID: "t3", Date: day, Side: models.SideLong}))

	ids, err = s.ListStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana", "beto"}, ids)
}

func TestEmotionsSnapshotReplace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEmotions(ctx, emotion.DefaultRegistry().Definitions()))

	defs, err := s.GetEmotions(ctx)
	require.NoError(t, err)
	assert.Len(t, defs, emotion.DefaultRegistry().Len())

	// A new snapshot fully replaces the previous one.
	custom := []emotion.Definition{
		{ID: "zen", Label: "Zen", Category: models.CategoryPositive, Score: 3},
	}
	require.NoError(t, s.SaveEmotions(ctx, custom))

	defs, err = s.GetEmotions(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "zen", defs[0].ID)
	assert.Equal(t, models.CategoryPositive, defs[0].Category)
}

func TestAlertsAppendOnlyAndAck(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ts := time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)
	a := &models.Alert{
		ID: "a1", StudentID: "aluno-1", Type: models.AlertTilt,
		Severity: models.SeverityMedium, Message: "tilt", Timestamp: ts,
	}
	require.NoError(t, s.SaveAlert(ctx, a))

	// Re-saving the same ID with a different message must not overwrite.
	dup := *a
	dup.Message = "changed"
	require.NoError(t, s.SaveAlert(ctx, &dup))

	got, err := s.GetAlerts(ctx, "aluno-1", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tilt", got[0].Message)
	assert.False(t, got[0].Read)

	require.NoError(t, s.MarkAlertRead(ctx, "a1"))

	unread, err := s.GetAlerts(ctx, "aluno-1", true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := s.GetAlerts(ctx, "aluno-1", false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Read)

	assert.ErrorIs(t, s.MarkAlertRead(ctx, "missing"), apperrors.ErrAlertNotFound)
}
