package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"tradementor/internal/emotion"
)

// addEmotionCommands adds emotion registry commands.
func addEmotionCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "emotions",
		Short: "Emotion registry management",
	}

	cmd.AddCommand(newEmotionsListCmd(app))
	cmd.AddCommand(newEmotionsImportCmd(app))

	rootCmd.AddCommand(cmd)
}

func newEmotionsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the active emotion registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			defs := loadRegistry(ctx, app).Definitions()
			sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
			if output.IsJSON() {
				return output.JSON(defs)
			}

			table := NewTable(output, "ID", "Label", "Category", "Score", "Pattern")
			for _, d := range defs {
				table.Row(d.ID, d.Label, string(d.Category), fmt.Sprintf("%+d", d.Score), d.BehavioralPattern)
			}
			table.Render()
			return nil
		},
	}
}

func newEmotionsImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the registry from a JSON definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var defs []emotion.Definition
			if err := json.Unmarshal(data, &defs); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}
			if len(defs) == 0 {
				return fmt.Errorf("%s contains no emotion definitions", args[0])
			}

			if err := app.Store.SaveEmotions(ctx, defs); err != nil {
				return err
			}
			output.Success("Imported %d emotion definitions", len(defs))
			return nil
		},
	}
}
