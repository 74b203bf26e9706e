package cmd

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/marshab/marskit/internal/catalog"
	"github.com/marshab/marskit/internal/exitcode"
	"github.com/marshab/marskit/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the parts in the kit",
	Long: `Lists every document in the kit in emit order, with its slug, output
filename, and title.

Use --filter with a glob pattern to narrow the listing by slug or filename:

  marskit list --filter 'hatch-*'
  marskit list --filter '*.scad'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listFilter string

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "glob pattern on part slug or filename")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	cat, err := catalog.Load()
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, err)
	}

	parts, err := filterParts(cat.Parts(), listFilter)
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, err)
	}

	if jsonOutput {
		output.JSON(map[string]interface{}{"parts": parts})
		return nil
	}

	w := cmd.OutOrStdout()
	title := cat.Metadata.Title
	if title == "" {
		title = cat.Metadata.Name
	}
	fmt.Fprintln(w, output.StyleTitle.Render(title))
	for _, p := range parts {
		line := fmt.Sprintf("%-14s %-30s %s", p.Slug, p.Filename, p.Title)
		if p.Kind == "text" {
			fmt.Fprintln(w, output.StyleMuted.Render(line))
			continue
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, output.StyleMuted.Render(fmt.Sprintf("%d part(s)", len(parts))))
	return nil
}

// filterParts narrows parts to those whose slug or filename matches pattern.
func filterParts(parts []catalog.Part, pattern string) ([]catalog.Part, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return parts, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid filter pattern %q", pattern)
	}
	matched := make([]catalog.Part, 0, len(parts))
	for _, p := range parts {
		slugOK, _ := doublestar.Match(pattern, p.Slug)
		fileOK, _ := doublestar.Match(pattern, p.Filename)
		if slugOK || fileOK {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
