package cli

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"tradementor/internal/models"
	"tradementor/internal/performance"
	"tradementor/internal/store"
)

// studentSummary is one row of the mentor scan result.
type studentSummary struct {
	StudentID string              `json:"studentId"`
	Trades    int                 `json:"trades"`
	Score     float64             `json:"score"`
	Status    models.HealthStatus `json:"status"`
	Trend     models.Trend        `json:"trend"`
	Alerts    int                 `json:"alerts"`
}

// addMentorCommands adds mentor-side commands.
func addMentorCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "mentor",
		Short: "Mentor-side monitoring",
	}

	cmd.AddCommand(newMentorScanCmd(app))
	rootCmd.AddCommand(cmd)
}

func newMentorScanCmd(app *App) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Analyze every student and rank by risk",
		Long:  "Run the behavioral analysis for all students concurrently. Each student gets an independent input slice; the pipeline itself is pure.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			students, err := app.Store.ListStudents(ctx)
			if err != nil {
				return err
			}
			if len(students) == 0 {
				output.Info("No students with recorded trades.")
				return nil
			}

			filter := tradeFilterFromFlags(cmd)
			summaries := scanStudents(ctx, app, students, filter, workers)

			if output.IsJSON() {
				return output.JSON(summaries)
			}

			output.Bold("Mentor Scan - %d students", len(summaries))
			table := NewTable(output, "Student", "Trades", "Score", "Status", "Trend", "Alerts")
			for _, s := range summaries {
				table.Row(s.StudentID,
					itoa(s.Trades),
					ftoa(s.Score),
					string(s.Status),
					string(s.Trend),
					itoa(s.Alerts))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Analysis workers (0 = NumCPU)")
	return cmd
}

// scanStudents fans student analyses out over a worker pool and collects
// summaries ranked worst-first (status tier, then score ascending).
func scanStudents(ctx context.Context, app *App, students []string, filter store.TradeFilter, workers int) []studentSummary {
	pool := performance.NewWorkerPool(workers)
	pool.Start()
	defer pool.Stop()

	var mu sync.Mutex
	var wg sync.WaitGroup
	summaries := make([]studentSummary, 0, len(students))

	for _, studentID := range students {
		studentID := studentID
		wg.Add(1)
		task := func() {
			defer wg.Done()
			result, err := runAnalysis(ctx, app, studentID, filter)
			if err != nil {
				app.Logger.Warn().Err(err).Str("student_id", studentID).Msg("Scan failed for student")
				return
			}
			mu.Lock()
			summaries = append(summaries, studentSummary{
				StudentID: studentID,
				Trades:    result.Metrics.TotalTrades,
				Score:     result.Score.Score,
				Status:    result.Status,
				Trend:     result.Score.Trend,
				Alerts:    len(result.Alerts),
			})
			mu.Unlock()
		}
		if !pool.Submit(task) {
			task()
		}
	}
	wg.Wait()

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Status != summaries[j].Status {
			return statusRank(summaries[i].Status) < statusRank(summaries[j].Status)
		}
		if summaries[i].Score != summaries[j].Score {
			return summaries[i].Score < summaries[j].Score
		}
		return summaries[i].StudentID < summaries[j].StudentID
	})
	return summaries
}

func statusRank(s models.HealthStatus) int {
	switch s {
	case models.StatusCritical:
		return 0
	case models.StatusWarning:
		return 1
	case models.StatusAttention:
		return 2
	default:
		return 3
	}
}
