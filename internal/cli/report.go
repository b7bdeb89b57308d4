package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tradementor/internal/analysis/scoring"
	"tradementor/pkg/utils"
)

// addReportCommands adds reporting commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Journal reports",
	}

	cmd.AddCommand(newReportDailyCmd(app))
	cmd.AddCommand(newReportTradesCmd(app))

	rootCmd.AddCommand(cmd)
}

func newReportDailyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Daily emotional score series",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			studentID, _ := cmd.Flags().GetString("student")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trades, err := app.Store.GetTrades(ctx, studentID, tradeFilterFromFlags(cmd))
			if err != nil {
				return err
			}

			scorer := scoring.NewScorer(loadRegistry(ctx, app))
			daily := scorer.DailyScores(trades)
			if output.IsJSON() {
				return output.JSON(daily)
			}

			if len(daily) == 0 {
				output.Info("No trades recorded yet.")
				return nil
			}

			output.Bold("Daily Emotional Scores - %s", studentID)
			table := NewTable(output, "Date", "Score", "Trades")
			for _, d := range daily {
				table.Row(d.Date, scoreCell(d.Score), fmt.Sprintf("%d", d.Trades))
			}
			table.Render()
			return nil
		},
	}
}

func newReportTradesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trades",
		Short: "List recorded trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			studentID, _ := cmd.Flags().GetString("student")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trades, err := app.Store.GetTrades(ctx, studentID, tradeFilterFromFlags(cmd))
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Info("No trades recorded yet.")
				return nil
			}

			var net float64
			table := NewTable(output, "Date", "Ticker", "Side", "Qty", "Result", "Emotion")
			for _, t := range trades {
				net += t.Result
				emotionID := t.EmotionEntry
				if emotionID == "" {
					emotionID = t.Emotion
				}
				table.Row(
					utils.FormatDate(t.Date),
					t.Ticker,
					string(t.Side),
					fmt.Sprintf("%.0f", t.Qty),
					utils.FormatResult(t.Result),
					emotionID,
				)
			}
			table.Render()
			output.Println()
			output.Printf("Net: %s\n", utils.FormatResult(net))
			return nil
		},
	}
}

// scoreCell colors a daily score cell by its health band.
func scoreCell(score float64) string {
	text := fmt.Sprintf("%.1f", score)
	switch {
	case score >= 80:
		return color.GreenString(text)
	case score >= 60:
		return color.CyanString(text)
	case score >= 40:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}
