package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tradementor/internal/analysis"
	"tradementor/internal/analysis/ledger"
	"tradementor/internal/emotion"
	apperrors "tradementor/internal/errors"
	"tradementor/internal/logging"
	"tradementor/internal/models"
	"tradementor/internal/store"
	"tradementor/pkg/utils"
)

// addAnalyzeCommand adds the behavioral analysis command.
func addAnalyzeCommand(rootCmd *cobra.Command, app *App) {
	var persist bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the behavioral analysis pipeline",
		Long:  "Build the trade ledger, run the pattern detectors, score the period and aggregate alerts for a student.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			studentID, _ := cmd.Flags().GetString("student")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			result, err := runAnalysis(ctx, app, studentID, tradeFilterFromFlags(cmd))
			if err != nil {
				return err
			}

			logging.LogAnalysis(app.Logger, studentID, result.Metrics.TotalTrades,
				result.Score.Score, string(result.Status), len(result.Alerts))

			if persist {
				if err := persistAlerts(ctx, app, result.Alerts); err != nil {
					return err
				}
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			renderAnalysis(output, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&persist, "persist", false, "Write new alerts to the notification store")
	rootCmd.AddCommand(cmd)
}

// runAnalysis assembles the engine input from the store and invokes the
// pure pipeline. All I/O happens here, before and after the pipeline.
func runAnalysis(ctx context.Context, app *App, studentID string, filter store.TradeFilter) (*analysis.Result, error) {
	trades, err := app.Store.GetTrades(ctx, studentID, filter)
	if err != nil {
		return nil, err
	}

	var plan models.Plan
	if filter.PlanID != "" {
		p, err := app.Store.GetPlan(ctx, studentID, filter.PlanID)
		if err != nil && !errors.Is(err, apperrors.ErrPlanNotFound) {
			return nil, err
		}
		if p != nil {
			plan = *p
		}
	}

	persisted, err := app.Store.GetAlerts(ctx, studentID, true)
	if err != nil {
		return nil, err
	}

	return analysis.Analyze(analysis.Input{
		StudentID: studentID,
		Trades:    trades,
		Plan:      plan,
		Registry:  loadRegistry(ctx, app),
		Config:    app.Config.Detection,
		Statuses:  app.Config.Statuses,
		Ledger:    ledger.Options{From: filter.StartDate, To: filter.EndDate},
		Persisted: persisted,
	}), nil
}

// loadRegistry loads the persisted emotion snapshot, falling back to the
// stock registry on a fresh install.
func loadRegistry(ctx context.Context, app *App) *emotion.Registry {
	defs, err := app.Store.GetEmotions(ctx)
	if err != nil || len(defs) == 0 {
		return emotion.DefaultRegistry()
	}
	return emotion.NewRegistry(defs)
}

// persistAlerts appends fresh alerts to the notification store and pushes
// CRITICAL ones to the configured channels.
func persistAlerts(ctx context.Context, app *App, alerts []models.Alert) error {
	for i := range alerts {
		a := alerts[i]
		if err := app.Store.SaveAlert(ctx, &a); err != nil {
			return err
		}
		logging.LogAlert(app.Logger, a.ID, a.StudentID, string(a.Type), string(a.Severity))
		if a.Severity == models.SeverityCritical {
			if err := app.Notifier.SendAlert(ctx, &a); err != nil {
				app.Logger.Warn().Err(err).Str("alert_id", a.ID).Msg("Notification delivery failed")
			}
		}
	}
	return nil
}

func renderAnalysis(output *Output, result *analysis.Result) {
	output.Bold("Behavioral Analysis")
	output.Println()

	output.Printf("Trades:     %d (%d wins / %d losses, %.0f%% win rate)\n",
		result.Metrics.TotalTrades, result.Metrics.Wins, result.Metrics.Losses, result.Metrics.WinRate)
	output.Printf("Net result: %s%s%s\n",
		output.ResultColor(result.Metrics.NetResult), utils.FormatResult(result.Metrics.NetResult), ColorReset)
	output.Printf("Score:      %.1f/100 (%s, trend %s)\n",
		result.Score.Score, result.Status, result.Score.Trend)
	if result.Metrics.Violations > 0 {
		output.Warning("Compliance violations: %d", result.Metrics.Violations)
	}
	output.Println()

	if len(result.Findings) == 0 {
		output.Info("No behavioral patterns detected.")
		return
	}

	output.Bold("Findings")
	for _, f := range result.Findings {
		switch f.Severity {
		case models.SeverityCritical:
			output.Error("  [%s] %s", f.Severity, f.Message)
		case models.SeverityHigh:
			output.Error("  [%s] %s", f.Severity, f.Message)
		case models.SeverityMedium:
			output.Warning("  [%s] %s", f.Severity, f.Message)
		default:
			output.Success("  [%s] %s", f.Severity, f.Message)
		}
	}
}
