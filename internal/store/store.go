// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"tradementor/internal/emotion"
	"tradementor/internal/models"
)

// DataStore defines the interface for journal persistence. The analysis
// engine itself never touches the store; the CLI reads inputs here before
// invoking the engine and writes alerts afterwards. The alert store is
// append-only from the engine's point of view.
type DataStore interface {
	// Trades
	SaveTrade(ctx context.Context, studentID string, trade *models.Trade) error
	GetTrades(ctx context.Context, studentID string, filter TradeFilter) ([]models.Trade, error)

	// Plans
	SavePlan(ctx context.Context, studentID string, plan *models.Plan) error
	GetPlan(ctx context.Context, studentID, planID string) (*models.Plan, error)

	// Students
	ListStudents(ctx context.Context) ([]string, error)

	// Emotion registry snapshot
	SaveEmotions(ctx context.Context, defs []emotion.Definition) error
	GetEmotions(ctx context.Context) ([]emotion.Definition, error)

	// Alerts (notification store)
	SaveAlert(ctx context.Context, alert *models.Alert) error
	GetAlerts(ctx context.Context, studentID string, unreadOnly bool) ([]models.Alert, error)
	MarkAlertRead(ctx context.Context, alertID string) error

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	PlanID    string
	Ticker    string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
