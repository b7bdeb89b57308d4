package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradementor/internal/config"
	"tradementor/internal/notify"
	"tradementor/internal/store"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    store.DataStore
	Notifier notify.Notifier
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Notifier: notify.NewNotifier(cfg.Notifications),
	}

	rootCmd := &cobra.Command{
		Use:     "tradementor",
		Short:   "Trading journal with behavioral analysis",
		Long:    "Record trades against plans and surface behavioral risk patterns: tilt, revenge trading, overtrading, FOMO and plan-compliance breaches.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.NewSQLiteStore(cfg.Database.Path)
			if err != nil {
				return err
			}
			app.Store = s
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Store != nil {
				return app.Store.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().String("student", "default", "Student the command operates on")
	rootCmd.PersistentFlags().String("plan", "", "Restrict to a plan ID")
	rootCmd.PersistentFlags().String("from", "", "Start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("to", "", "End date (YYYY-MM-DD)")

	addTradeCommands(rootCmd, app)
	addAnalyzeCommand(rootCmd, app)
	addReportCommands(rootCmd, app)
	addAlertCommands(rootCmd, app)
	addEmotionCommands(rootCmd, app)
	addMentorCommands(rootCmd, app)

	return rootCmd
}
