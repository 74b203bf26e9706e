// Package verify compares kit documents on disk against the embedded
// catalog. It never repairs anything; emit and watch do the writing.
package verify

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marshab/marskit/internal/catalog"
)

// Status classifies one on-disk document against its embedded content.
type Status string

const (
	StatusOK       Status = "ok"       // present and byte-identical
	StatusModified Status = "modified" // present but content differs
	StatusMissing  Status = "missing"  // not on disk
)

// FileResult is the verification outcome for a single document.
type FileResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Status   Status `json:"status"`
}

// Summary aggregates the per-file results.
type Summary struct {
	Results  []FileResult `json:"results"`
	OK       int          `json:"ok"`
	Modified int          `json:"modified"`
	Missing  int          `json:"missing"`
}

// Clean reports whether every document is present and byte-identical.
func (s *Summary) Clean() bool {
	return s.Modified == 0 && s.Missing == 0
}

// Drifted returns the number of documents that differ from the catalog.
func (s *Summary) Drifted() int {
	return s.Modified + s.Missing
}

// Run compares every document in docs against outputDir, in catalog order.
// A directory that does not exist reports every document as missing.
func Run(outputDir string, docs []catalog.NamedDocument) (*Summary, error) {
	sum := &Summary{Results: make([]FileResult, 0, len(docs))}
	for _, doc := range docs {
		absPath, err := filepath.Abs(filepath.Join(outputDir, doc.Filename))
		if err != nil {
			return nil, fmt.Errorf("resolving path for %s: %w", doc.Filename, err)
		}
		res := FileResult{Filename: doc.Filename, Path: absPath}

		onDisk, err := os.ReadFile(absPath)
		switch {
		case err == nil && bytes.Equal(onDisk, doc.Content):
			res.Status = StatusOK
			sum.OK++
		case err == nil:
			res.Status = StatusModified
			sum.Modified++
		case os.IsNotExist(err):
			res.Status = StatusMissing
			sum.Missing++
		default:
			return nil, fmt.Errorf("reading %s: %w", absPath, err)
		}
		sum.Results = append(sum.Results, res)
	}
	return sum, nil
}
