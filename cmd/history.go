package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marshab/marskit/internal/audit"
	"github.com/marshab/marskit/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show CLI audit history",
	Long: `Displays audit events written by marskit in JSONL format.

By default, reads ~/.marskit/audit.log and prints the latest events.
Use --op to filter on a specific operation (emit, verify, watch, ...).`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historyOp    string
	historyLimit int
)

func init() {
	historyCmd.Flags().StringVar(&historyOp, "op", "", "filter by operation")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max number of events to display")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	events, err := audit.ReadUserAudit()
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	filtered := make([]audit.Event, 0, len(events))
	for _, event := range events {
		if historyOp != "" && event.Operation != historyOp {
			continue
		}
		filtered = append(filtered, event)
	}

	start := 0
	if historyLimit > 0 && len(filtered) > historyLimit {
		start = len(filtered) - historyLimit
	}
	filtered = filtered[start:]

	if jsonOutput {
		output.JSON(map[string]interface{}{"events": filtered})
		return nil
	}

	if len(filtered) == 0 {
		fmt.Fprintln(os.Stderr, "No audit events found.")
		return nil
	}

	bold := color.New(color.Bold)
	bold.Fprintln(os.Stderr, "📜 marskit history")
	for _, event := range filtered {
		status := color.New(color.FgGreen)
		if event.Result != "success" {
			status = color.New(color.FgRed)
		}
		status.Fprintf(os.Stderr, "  %s", event.Result)
		fmt.Fprintf(os.Stderr, "  %s  op=%s", event.Timestamp, event.Operation)
		if event.OutputDir != "" {
			fmt.Fprintf(os.Stderr, "  dir=%s", event.OutputDir)
		}
		fmt.Fprintf(os.Stderr, "  exit=%d  duration=%dms\n", event.ExitCode, event.DurationMs)
	}

	return nil
}
