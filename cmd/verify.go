package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marshab/marskit/internal/catalog"
	"github.com/marshab/marskit/internal/exitcode"
	"github.com/marshab/marskit/internal/output"
	"github.com/marshab/marskit/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check emitted kit files against the embedded content",
	Long: `Compares every kit document under the output directory with the content
embedded in this binary.

Reports per file:
  - ok          present and byte-identical
  - modified    present but edited
  - missing     not on disk

Exits non-zero when any file is modified or missing.
Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	cat, err := catalog.Load()
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, err)
	}

	dir := resolveOutputDir()

	if !jsonOutput {
		color.New(color.Bold).Fprintf(os.Stderr, "Checking kit files in %s\n\n", dir)
	}

	sum, err := verify.Run(dir, cat.Documents())
	if err != nil {
		return exitcode.Wrap(exitcode.IO, err)
	}

	if jsonOutput {
		status := "ok"
		if !sum.Clean() {
			status = "drift-detected"
		}
		data, _ := json.MarshalIndent(map[string]interface{}{
			"status":    status,
			"outputDir": dir,
			"ok":        sum.OK,
			"modified":  sum.Modified,
			"missing":   sum.Missing,
			"files":     sum.Results,
		}, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		for _, res := range sum.Results {
			switch res.Status {
			case verify.StatusOK:
				color.New(color.FgGreen).Fprintf(os.Stderr, "   ✅ %-30s ok\n", res.Filename)
			case verify.StatusModified:
				color.New(color.FgYellow).Fprintf(os.Stderr, "   ⚠️  %-30s modified\n", res.Filename)
			case verify.StatusMissing:
				color.New(color.FgRed).Fprintf(os.Stderr, "   ❌ %-30s missing\n", res.Filename)
			}
		}

		fmt.Fprintln(os.Stderr)
		if sum.Clean() {
			color.New(color.FgGreen, color.Bold).Fprintln(os.Stderr, "✅ Kit matches the embedded content")
		} else {
			color.New(color.FgYellow, color.Bold).Fprintf(os.Stderr,
				"⚠️  %d of %d kit file(s) drifted\n", sum.Drifted(), len(sum.Results))
			fmt.Fprintln(os.Stderr, "   Run: marskit  to rewrite them")
		}
	}

	if !sum.Clean() {
		return exitcode.Wrap(exitcode.Drift, fmt.Errorf("%d kit file(s) drifted", sum.Drifted()))
	}

	return nil
}
