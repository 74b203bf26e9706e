package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marshab/marskit/internal/catalog"
	"github.com/marshab/marskit/internal/exitcode"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Export the part manifest JSON Schema or self-check the catalog",
	Long: `Schema tooling for the embedded part manifest.

Examples:
  marskit schema export                      # print schema to stdout
  marskit schema export --output schema.json # write to file
  marskit schema validate                    # self-check the embedded manifest`,
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the part manifest JSON Schema",
	Args:  cobra.NoArgs,
	RunE:  runSchemaExport,
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the embedded manifest against the JSON Schema",
	Args:  cobra.NoArgs,
	RunE:  runSchemaValidate,
}

var schemaOutputFile string

func init() {
	schemaExportCmd.Flags().StringVar(&schemaOutputFile, "output", "", "write schema to file instead of stdout")

	schemaCmd.AddCommand(schemaExportCmd)
	schemaCmd.AddCommand(schemaValidateCmd)
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaExport(cmd *cobra.Command, args []string) error {
	data := catalog.GetSchema()
	if len(data) == 0 {
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("no embedded schema available"))
	}

	if schemaOutputFile != "" {
		outPath, err := filepath.Abs(schemaOutputFile)
		if err != nil {
			return exitcode.Wrap(exitcode.IO, err)
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return exitcode.Wrap(exitcode.IO, err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return exitcode.Wrap(exitcode.IO, err)
		}
		color.New(color.FgGreen).Fprintf(os.Stderr, "✅ Schema written to %s\n", outPath)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runSchemaValidate(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("load catalog: %w", err))
	}

	result, err := catalog.Validate(cat)
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, err)
	}
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "❌ %s: %s\n", e.Field, e.Description)
		}
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("schema validation failed with %d error(s)", len(result.Errors)))
	}

	color.New(color.FgGreen, color.Bold).Fprintf(os.Stderr, "✅ Embedded manifest is valid (%d parts).\n", len(cat.Parts()))
	return nil
}
