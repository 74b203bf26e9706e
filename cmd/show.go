package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marshab/marskit/internal/catalog"
	"github.com/marshab/marskit/internal/exitcode"
	"github.com/marshab/marskit/internal/output"
	"github.com/marshab/marskit/internal/prompt"
)

var showCmd = &cobra.Command{
	Use:   "show [part]",
	Short: "Print one kit document",
	Long: `Prints the embedded content of one kit document to stdout.

The part may be named by slug, by output filename, or by a glob pattern
matching exactly one part. With no argument an interactive picker opens
(unless --no-input is set).

  marskit show hatch-ring
  marskit show storage_bin.scad
  marskit show 'pipe*'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	cat, err := catalog.Load()
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, err)
	}

	var part *catalog.Part
	if len(args) == 1 {
		part, err = resolvePart(cat, args[0])
		if err != nil {
			return exitcode.Wrap(exitcode.Validation, err)
		}
	} else {
		if noInput {
			return exitcode.Wrap(exitcode.Validation, output.NewErrorWithFix(
				"part name required with --no-input",
				"name a part, e.g. 'marskit show hatch-ring'"))
		}
		part, err = prompt.PickPart(prompt.NewSurveyPrompter(), cat)
		if err != nil {
			if errors.Is(err, prompt.ErrCancelled) {
				output.Warn("show canceled")
				return nil
			}
			return fmt.Errorf("picking part: %w", err)
		}
	}

	doc, ok := cat.Document(part.Filename)
	if !ok {
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("unknown part %q", part.Slug))
	}

	if jsonOutput {
		output.JSON(map[string]interface{}{
			"slug":     part.Slug,
			"filename": part.Filename,
			"title":    part.Title,
			"kind":     part.Kind,
			"content":  string(doc.Content),
		})
		return nil
	}

	_, err = cmd.OutOrStdout().Write(doc.Content)
	return err
}

// resolvePart finds one part by slug, by filename, or by a glob over both.
func resolvePart(cat *catalog.Catalog, ref string) (*catalog.Part, error) {
	if p, ok := cat.BySlug(ref); ok {
		return p, nil
	}
	for _, p := range cat.Parts() {
		if p.Filename == ref {
			part := p
			return &part, nil
		}
	}
	matched, err := filterParts(cat.Parts(), ref)
	if err != nil {
		return nil, err
	}
	switch len(matched) {
	case 0:
		return nil, fmt.Errorf("unknown part %q", ref)
	case 1:
		return &matched[0], nil
	default:
		slugs := make([]string, 0, len(matched))
		for _, p := range matched {
			slugs = append(slugs, p.Slug)
		}
		return nil, fmt.Errorf("pattern %q matches %d parts: %s", ref, len(matched), strings.Join(slugs, ", "))
	}
}
