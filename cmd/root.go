// Package cmd implements the Cobra-based CLI for marskit.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/marshab/marskit/internal/catalog"
	"github.com/marshab/marskit/internal/emitter"
	"github.com/marshab/marskit/internal/exitcode"
	"github.com/marshab/marskit/internal/output"
)

var (
	cfgFile    string
	outputDir  string
	verbosity  int
	dryRun     bool
	jsonOutput bool // --json flag for machine-readable output
	noInput    bool
)

// rootCmd is the top-level command for marskit. Running it bare emits the
// whole kit into the output directory.
var rootCmd = &cobra.Command{
	Use:   "marskit",
	Short: "Mars Habitat 3D-Print Challenge kit emitter",
	Long: `marskit writes the Mars Habitat 3D-Print Challenge kit to disk: four
parametric OpenSCAD parts plus the challenge brief.

Running marskit with no arguments emits all five documents into the output
directory (default: the current directory), overwriting whatever is there.
The content is fixed at build time, so emitting is deterministic and
repeatable: run it again to restore any file you edited or deleted.

  marskit                  emit the kit into the current directory
  marskit -o challenge/    emit the kit into challenge/
  marskit verify           report drift between disk and the embedded kit
  marskit watch            keep the emitted kit pinned to its content

Workflow: emit -> print -> edit constants -> verify or watch`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEmit,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "output directory for kit documents (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: marskit.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v, -vv)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report what would be written without touching disk")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results as JSON (machine-readable)")
	rootCmd.PersistentFlags().BoolVar(&noInput, "no-input", false, "never prompt; fail when input would be required")

	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
	_ = viper.BindPFlag("dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("marskit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}
	viper.SetEnvPrefix("MARSKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbosity > 0 {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveOutputDir picks the output directory: the --output-dir flag wins,
// then MARSKIT_OUTPUT_DIR or the config file, then the current directory.
func resolveOutputDir() string {
	if v := strings.TrimSpace(outputDir); v != "" {
		return v
	}
	if v := strings.TrimSpace(viper.GetString("output_dir")); v != "" {
		return v
	}
	return "."
}

func runEmit(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	cat, err := catalog.Load()
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, err)
	}

	dir := resolveOutputDir()
	writer := emitter.Writer{DryRun: dryRun}
	written, err := writer.WriteAll(dir, cat.Documents())
	if err != nil {
		return exitcode.Wrap(exitcode.IO, err)
	}

	if jsonOutput {
		output.JSON(map[string]interface{}{
			"outputDir": dir,
			"dryRun":    dryRun,
			"files":     written,
		})
		return nil
	}

	if dryRun {
		output.Success(fmt.Sprintf("Dry-run complete: %d files would be written", len(written)))
		return nil
	}
	output.Success(fmt.Sprintf("Wrote %d files", len(written)))
	return nil
}
