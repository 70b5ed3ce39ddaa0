package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runsLimit int

// runsCmd groups the run history commands.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the reconciliation run history",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.Close()

		runs, err := app.service.ListRuns(context.Background(), runsLimit)
		if err != nil {
			return err
		}
		for _, r := range runs {
			app.logger.Info("Run",
				zap.String("id", r.ID),
				zap.String("status", r.Status),
				zap.Time("created_at", r.CreatedAt),
				zap.String("input_a", r.InputA),
				zap.String("input_b", r.InputB),
				zap.String("output", r.Output),
				zap.Int("written", r.Written),
			)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.Close()

		run, err := app.service.GetRun(context.Background(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs")
	runsCmd.AddCommand(runsListCmd, runsShowCmd)
	RootCmd.AddCommand(runsCmd)
}
