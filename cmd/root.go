package cmd

import (
	"fmt"
	"os"

	"record-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "record-reconciler",
	Short: "Key-value record file reconciler",
	Long: `Record Reconciler merges two delimiter-separated record files by key.
Conflicting fields resolve in favour of the first file and fields missing on
one side are annotated with (f1) or (f2). Inputs and outputs may be local
paths or s3:// objects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps for CLI users
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
