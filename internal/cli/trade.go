package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "tradementor/internal/errors"
	"tradementor/internal/models"
	"tradementor/internal/store"
	"tradementor/pkg/utils"
)

const (
	csvDateLayout = "2006-01-02"
	csvTimeLayout = "2006-01-02 15:04"
)

// csvTrade is the CSV row shape for import/export. Times are kept as
// strings so exports from other tools with missing timestamps round-trip.
type csvTrade struct {
	ID           string  `csv:"id"`
	Date         string  `csv:"date"`
	EntryTime    string  `csv:"entry_time"`
	ExitTime     string  `csv:"exit_time"`
	Ticker       string  `csv:"ticker"`
	Side         string  `csv:"side"`
	Qty          float64 `csv:"qty"`
	Result       float64 `csv:"result"`
	EmotionEntry string  `csv:"emotion_entry"`
	EmotionExit  string  `csv:"emotion_exit"`
	Emotion      string  `csv:"emotion"`
	PlanID       string  `csv:"plan_id"`
}

// addTradeCommands adds trade recording, import and export commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade recording and transfer",
	}

	cmd.AddCommand(newTradeLogCmd(app))
	cmd.AddCommand(newTradeImportCmd(app))
	cmd.AddCommand(newTradeExportCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeLogCmd(app *App) *cobra.Command {
	var (
		date, entry, exit         string
		ticker, side              string
		qty, result               float64
		emotionEntry, emotionExit string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a completed trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			studentID, _ := cmd.Flags().GetString("student")
			planID, _ := cmd.Flags().GetString("plan")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			t := &models.Trade{
				ID:           uuid.NewString(),
				Ticker:       strings.ToUpper(ticker),
				Side:         models.Side(strings.ToUpper(side)),
				Qty:          qty,
				Result:       result,
				EmotionEntry: emotionEntry,
				EmotionExit:  emotionExit,
				PlanID:       planID,
			}

			var err error
			if t.Date, err = time.Parse(csvDateLayout, date); err != nil {
				return fmt.Errorf("invalid --date %q: %w", date, err)
			}
			if entry != "" {
				if t.EntryTime, err = time.Parse(csvTimeLayout, entry); err != nil {
					return fmt.Errorf("invalid --entry %q: %w", entry, err)
				}
			}
			if exit != "" {
				if t.ExitTime, err = time.Parse(csvTimeLayout, exit); err != nil {
					return fmt.Errorf("invalid --exit %q: %w", exit, err)
				}
			}

			if err := app.Store.SaveTrade(ctx, studentID, t); err != nil {
				return err
			}
			output.Success("Recorded %s %s %s %.0f @ %s", t.Ticker, t.Side, utils.FormatResult(t.Result), t.Qty, date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format(csvDateLayout), "Trade date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&entry, "entry", "", "Entry time (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&exit, "exit", "", "Exit time (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&ticker, "ticker", "", "Ticker symbol")
	cmd.Flags().StringVar(&side, "side", "LONG", "Trade side (LONG|SHORT)")
	cmd.Flags().Float64Var(&qty, "qty", 1, "Quantity")
	cmd.Flags().Float64Var(&result, "result", 0, "Signed financial result")
	cmd.Flags().StringVar(&emotionEntry, "emotion-entry", "", "Emotion at entry")
	cmd.Flags().StringVar(&emotionExit, "emotion-exit", "", "Emotion at exit")
	cmd.MarkFlagRequired("ticker")

	return cmd
}

func newTradeImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			studentID, _ := cmd.Flags().GetString("student")
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			f, err := os.Open(args[0])
			if err != nil {
				return &apperrors.ImportError{File: args[0], Err: err}
			}
			defer f.Close()

			var rows []*csvTrade
			if err := gocsv.UnmarshalFile(f, &rows); err != nil {
				return &apperrors.ImportError{File: args[0], Err: err}
			}

			var imported, skipped int
			for i, row := range rows {
				t, err := row.toTrade()
				if err != nil {
					output.Warning("Skipping row %d: %v", i+1, err)
					skipped++
					continue
				}
				if err := app.Store.SaveTrade(ctx, studentID, t); err != nil {
					return err
				}
				imported++
			}

			output.Success("Imported %d trades (%d skipped)", imported, skipped)
			return nil
		},
	}
}

func newTradeExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export a student's trades to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			studentID, _ := cmd.Flags().GetString("student")
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			trades, err := app.Store.GetTrades(ctx, studentID, tradeFilterFromFlags(cmd))
			if err != nil {
				return err
			}

			rows := make([]*csvTrade, len(trades))
			for i, t := range trades {
				rows[i] = fromTrade(t)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := gocsv.MarshalFile(&rows, f); err != nil {
				return err
			}
			output.Success("Exported %d trades to %s", len(rows), args[0])
			return nil
		},
	}
}

// tradeFilterFromFlags builds a store filter from the persistent
// --plan/--from/--to flags. Unparseable dates are ignored rather than
// failing the command.
func tradeFilterFromFlags(cmd *cobra.Command) store.TradeFilter {
	filter := store.TradeFilter{}
	filter.PlanID, _ = cmd.Flags().GetString("plan")
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		if t, err := time.Parse(csvDateLayout, from); err == nil {
			filter.StartDate = t
		}
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		if t, err := time.Parse(csvDateLayout, to); err == nil {
			filter.EndDate = t
		}
	}
	return filter
}

func (r *csvTrade) toTrade() (*models.Trade, error) {
	t := &models.Trade{
		ID:           r.ID,
		Ticker:       strings.ToUpper(r.Ticker),
		Side:         models.Side(strings.ToUpper(r.Side)),
		Qty:          r.Qty,
		Result:       r.Result,
		EmotionEntry: r.EmotionEntry,
		EmotionExit:  r.EmotionExit,
		Emotion:      r.Emotion,
		PlanID:       r.PlanID,
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	date, err := time.Parse(csvDateLayout, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", r.Date)
	}
	t.Date = date

	if r.EntryTime != "" {
		if t.EntryTime, err = time.Parse(csvTimeLayout, r.EntryTime); err != nil {
			return nil, fmt.Errorf("invalid entry_time %q", r.EntryTime)
		}
	}
	if r.ExitTime != "" {
		if t.ExitTime, err = time.Parse(csvTimeLayout, r.ExitTime); err != nil {
			return nil, fmt.Errorf("invalid exit_time %q", r.ExitTime)
		}
	}
	return t, nil
}

func fromTrade(t models.Trade) *csvTrade {
	row := &csvTrade{
		ID:           t.ID,
		Date:         t.Date.Format(csvDateLayout),
		Ticker:       t.Ticker,
		Side:         string(t.Side),
		Qty:          t.Qty,
		Result:       t.Result,
		EmotionEntry: t.EmotionEntry,
		EmotionExit:  t.EmotionExit,
		PlanID:       t.PlanID,
	}
	if t.HasEntryTime() {
		row.EntryTime = t.EntryTime.Format(csvTimeLayout)
	}
	if t.HasExitTime() {
		row.ExitTime = t.ExitTime.Format(csvTimeLayout)
	}
	return row
}
