// Package emitter writes kit documents into the output directory.
//
// Writes are deterministic: the same catalog always produces the same bytes
// at the same paths, and an existing file is replaced outright. Nothing in
// the output directory is ever read back to decide what to write.
package emitter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marshab/marskit/internal/catalog"
	"github.com/marshab/marskit/internal/output"
)

// EnsureDir creates dir if it does not exist, parents included. A path that
// exists but is not a directory is an error; documents always land in a
// directory.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("output path %s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("inspecting output directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}

// Writer writes kit documents to disk.
type Writer struct {
	DryRun bool
}

// WriteDocument writes one document into dir, replacing any previous file,
// and returns the absolute path. In dry-run mode nothing is written but the
// path is still resolved.
func (w Writer) WriteDocument(dir string, doc catalog.NamedDocument) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, doc.Filename))
	if err != nil {
		return "", fmt.Errorf("resolving path for %s: %w", doc.Filename, err)
	}
	if w.DryRun {
		return absPath, nil
	}
	if err := os.WriteFile(absPath, doc.Content, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", absPath, err)
	}
	return absPath, nil
}

// WriteAll ensures dir exists and writes every document in catalog order,
// logging one line per file. The first failure aborts the run; documents
// already written stay on disk.
func (w Writer) WriteAll(dir string, docs []catalog.NamedDocument) ([]string, error) {
	if !w.DryRun {
		if err := EnsureDir(dir); err != nil {
			return nil, err
		}
	}
	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		absPath, err := w.WriteDocument(dir, doc)
		if err != nil {
			return nil, err
		}
		paths = append(paths, absPath)
		if w.DryRun {
			output.Info("Would write " + absPath)
			continue
		}
		output.Info("Wrote " + absPath)
	}
	return paths, nil
}
