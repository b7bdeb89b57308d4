package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tradementor/internal/emotion"
	apperrors "tradementor/internal/errors"
	"tradementor/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		date DATETIME NOT NULL,
		entry_time DATETIME,
		exit_time DATETIME,
		ticker TEXT NOT NULL,
		side TEXT NOT NULL,
		qty REAL NOT NULL,
		result REAL NOT NULL,
		emotion_entry TEXT,
		emotion_exit TEXT,
		plan_id TEXT,
		account_id TEXT,
		ro_status TEXT,
		rr_status TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_trades_student_date ON trades(student_id, date);

	CREATE TABLE IF NOT EXISTS plans (
		id TEXT NOT NULL,
		student_id TEXT NOT NULL,
		pl REAL NOT NULL,
		current_pl REAL,
		goal_percent REAL,
		stop_percent REAL,
		cycle_goal REAL,
		cycle_stop REAL,
		risk_per_operation REAL,
		rr_target REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (student_id, id)
	);

	CREATE TABLE IF NOT EXISTS emotions (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		emoji TEXT,
		category TEXT NOT NULL,
		score INTEGER NOT NULL,
		behavioral_pattern TEXT
	);

	CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		type TEXT NOT NULL,
		severity TEXT NOT NULL,
		message TEXT,
		timestamp DATETIME NOT NULL,
		read INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_alerts_student ON alerts(student_id, read);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveTrade inserts or replaces a trade for a student.
func (s *SQLiteStore) SaveTrade(ctx context.Context, studentID string, t *models.Trade) error {
	var roStatus, rrStatus string
	if t.Compliance != nil {
		roStatus = string(t.Compliance.ROStatus)
		rrStatus = string(t.Compliance.RRStatus)
	}
	emotionEntry := t.EmotionEntry
	if emotionEntry == "" {
		emotionEntry = t.Emotion
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades
		(id, student_id, date, entry_time, exit_time, ticker, side, qty, result,
		 emotion_entry, emotion_exit, plan_id, account_id, ro_status, rr_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, studentID, t.Date, nullTime(t.EntryTime), nullTime(t.ExitTime),
		t.Ticker, string(t.Side), t.Qty, t.Result,
		emotionEntry, t.EmotionExit, t.PlanID, t.AccountID, roStatus, rrStatus)
	if err != nil {
		return apperrors.NewStoreError("save_trade", err)
	}
	return nil
}

// GetTrades returns a student's trades matching the filter, ordered by
// (date, entry_time) ascending.
func (s *SQLiteStore) GetTrades(ctx context.Context, studentID string, filter TradeFilter) ([]models.Trade, error) {
	query := `SELECT id, date, entry_time, exit_time, ticker, side, qty, result,
		emotion_entry, emotion_exit, plan_id, account_id, ro_status, rr_status
		FROM trades WHERE student_id = ?`
	args := []interface{}{studentID}

	var conds []string
	if filter.PlanID != "" {
		conds = append(conds, "plan_id = ?")
		args = append(args, filter.PlanID)
	}
	if filter.Ticker != "" {
		conds = append(conds, "ticker = ?")
		args = append(args, filter.Ticker)
	}
	if !filter.StartDate.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, filter.EndDate)
	}
	if len(conds) > 0 {
		query += " AND " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date ASC, entry_time ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("get_trades", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		var entryTime, exitTime sql.NullTime
		var side, roStatus, rrStatus string
		if err := rows.Scan(&t.ID, &t.Date, &entryTime, &exitTime, &t.Ticker, &side,
			&t.Qty, &t.Result, &t.EmotionEntry, &t.EmotionExit,
			&t.PlanID, &t.AccountID, &roStatus, &rrStatus); err != nil {
			return nil, apperrors.NewStoreError("scan_trade", err)
		}
		t.Side = models.Side(side)
		if entryTime.Valid {
			t.EntryTime = entryTime.Time
		}
		if exitTime.Valid {
			t.ExitTime = exitTime.Time
		}
		if roStatus != "" || rrStatus != "" {
			t.Compliance = &models.Compliance{
				ROStatus: models.ComplianceStatus(roStatus),
				RRStatus: models.ComplianceStatus(rrStatus),
			}
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// SavePlan inserts or replaces a student's plan.
func (s *SQLiteStore) SavePlan(ctx context.Context, studentID string, p *models.Plan) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO plans
		(id, student_id, pl, current_pl, goal_percent, stop_percent,
		 cycle_goal, cycle_stop, risk_per_operation, rr_target)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, studentID, p.PL, p.CurrentPL, p.GoalPercent, p.StopPercent,
		p.CycleGoal, p.CycleStop, p.RiskPerOperation, p.RRTarget)
	if err != nil {
		return apperrors.NewStoreError("save_plan", err)
	}
	return nil
}

// GetPlan fetches a student's plan by ID.
func (s *SQLiteStore) GetPlan(ctx context.Context, studentID, planID string) (*models.Plan, error) {
	var p models.Plan
	err := s.db.QueryRowContext(ctx, `
		SELECT id, pl, current_pl, goal_percent, stop_percent,
		       cycle_goal, cycle_stop, risk_per_operation, rr_target
		FROM plans WHERE student_id = ? AND id = ?`, studentID, planID).
		Scan(&p.ID, &p.PL, &p.CurrentPL, &p.GoalPercent, &p.StopPercent,
			&p.CycleGoal, &p.CycleStop, &p.RiskPerOperation, &p.RRTarget)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrPlanNotFound
	}
	if err != nil {
		return nil, apperrors.NewStoreError("get_plan", err)
	}
	return &p, nil
}

// ListStudents returns the distinct student IDs with recorded trades.
func (s *SQLiteStore) ListStudents(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT student_id FROM trades ORDER BY student_id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list_students", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewStoreError("scan_student", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SaveEmotions replaces the persisted registry snapshot.
func (s *SQLiteStore) SaveEmotions(ctx context.Context, defs []emotion.Definition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreError("save_emotions", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM emotions`); err != nil {
		return apperrors.NewStoreError("save_emotions", err)
	}
	for _, d := range defs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO emotions (id, label, emoji, category, score, behavioral_pattern)
			VALUES (?, ?, ?, ?, ?, ?)`,
			d.ID, d.Label, d.Emoji, string(d.Category), d.Score, d.BehavioralPattern); err != nil {
			return apperrors.NewStoreError("save_emotions", err)
		}
	}
	return tx.Commit()
}

// GetEmotions returns the persisted registry snapshot, which may be empty
// on a fresh install.
func (s *SQLiteStore) GetEmotions(ctx context.Context) ([]emotion.Definition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, emoji, category, score, behavioral_pattern
		FROM emotions ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewStoreError("get_emotions", err)
	}
	defer rows.Close()

	var defs []emotion.Definition
	for rows.Next() {
		var d emotion.Definition
		var category string
		if err := rows.Scan(&d.ID, &d.Label, &d.Emoji, &category, &d.Score, &d.BehavioralPattern); err != nil {
			return nil, apperrors.NewStoreError("scan_emotion", err)
		}
		d.Category = models.EmotionCategory(category)
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// SaveAlert appends an alert to the notification store.
func (s *SQLiteStore) SaveAlert(ctx context.Context, a *models.Alert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO alerts (id, student_id, type, severity, message, timestamp, read)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.StudentID, string(a.Type), string(a.Severity), a.Message, a.Timestamp, boolInt(a.Read))
	if err != nil {
		return apperrors.NewStoreError("save_alert", err)
	}
	return nil
}

// GetAlerts returns a student's alerts, newest first.
func (s *SQLiteStore) GetAlerts(ctx context.Context, studentID string, unreadOnly bool) ([]models.Alert, error) {
	query := `SELECT id, student_id, type, severity, message, timestamp, read
		FROM alerts WHERE student_id = ?`
	if unreadOnly {
		query += ` AND read = 0`
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := s.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, apperrors.NewStoreError("get_alerts", err)
	}
	defer rows.Close()

	var out []models.Alert
	for rows.Next() {
		var a models.Alert
		var alertType, severity string
		var read int
		if err := rows.Scan(&a.ID, &a.StudentID, &alertType, &severity, &a.Message, &a.Timestamp, &read); err != nil {
			return nil, apperrors.NewStoreError("scan_alert", err)
		}
		a.Type = models.AlertType(alertType)
		a.Severity = models.Severity(severity)
		a.Read = read != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

// MarkAlertRead flags an alert as acknowledged.
func (s *SQLiteStore) MarkAlertRead(ctx context.Context, alertID string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE alerts SET read = 1 WHERE id = ?`, alertID)
	if err != nil {
		return apperrors.NewStoreError("mark_alert_read", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrAlertNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
