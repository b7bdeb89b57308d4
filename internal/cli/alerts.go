package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tradementor/pkg/utils"
)

// addAlertCommands adds alert store commands.
func addAlertCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Behavioral alert management",
	}

	cmd.AddCommand(newAlertsListCmd(app))
	cmd.AddCommand(newAlertsAckCmd(app))

	rootCmd.AddCommand(cmd)
}

func newAlertsListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a student's alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			studentID, _ := cmd.Flags().GetString("student")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			alerts, err := app.Store.GetAlerts(ctx, studentID, !all)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(alerts)
			}

			if len(alerts) == 0 {
				output.Info("No alerts.")
				return nil
			}

			table := NewTable(output, "ID", "Severity", "Type", "When", "Message")
			for _, a := range alerts {
				table.Row(shortID(a.ID), string(a.Severity), string(a.Type), utils.FormatTime(a.Timestamp), a.Message)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include acknowledged alerts")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newAlertsAckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ack <alert-id>",
		Short: "Acknowledge an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.Store.MarkAlertRead(ctx, args[0]); err != nil {
				return err
			}
			output.Success("Alert %s acknowledged", args[0])
			return nil
		},
	}
}
