package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marshab/marskit/internal/catalog"
	"github.com/marshab/marskit/internal/exitcode"
	"github.com/marshab/marskit/internal/output"
	"github.com/marshab/marskit/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the output directory and restore drifted kit files",
	Long: `Reconciles the output directory once, rewriting any kit document that is
missing or modified, then watches it and undoes every further edit or delete
of a kit file. Files that are not part of the kit are never touched.

Editor saves fire bursts of filesystem events; they are coalesced for one
debounce window (--debounce) before reconciling.

Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchDebounce time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultWindow, "event debounce window")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	cat, err := catalog.Load()
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, err)
	}

	dir := resolveOutputDir()
	guard, err := watch.New(dir, cat.Documents(), watchDebounce, dryRun)
	if err != nil {
		return exitcode.Wrap(exitcode.IO, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	output.Step(fmt.Sprintf("Watching %s (Ctrl+C to stop)", dir))
	if err := guard.Run(ctx); err != nil {
		return exitcode.Wrap(exitcode.IO, err)
	}
	return nil
}
