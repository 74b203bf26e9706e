// Package watch keeps an emitted kit pinned to its catalog content. It
// watches the output directory and rewrites any kit document that is
// edited or deleted while the guard runs.
package watch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/marshab/marskit/internal/catalog"
	"github.com/marshab/marskit/internal/emitter"
	"github.com/marshab/marskit/internal/output"
)

// DefaultWindow is the debounce window for filesystem events.
const DefaultWindow = 300 * time.Millisecond

// Guard watches one output directory and restores drifted kit documents.
type Guard struct {
	dir        string
	docs       []catalog.NamedDocument
	byFilename map[string]catalog.NamedDocument
	writer     emitter.Writer
	debouncer  *Debouncer
	fsWatcher  *fsnotify.Watcher
	restores   atomic.Int64
}

// New creates a guard over dir for the given documents. The window controls
// how long a burst of events for one file is coalesced before reconciling.
// With dryRun set the guard only reports what it would restore.
func New(dir string, docs []catalog.NamedDocument, window time.Duration, dryRun bool) (*Guard, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}

	g := &Guard{
		dir:        dir,
		docs:       docs,
		byFilename: make(map[string]catalog.NamedDocument, len(docs)),
		writer:     emitter.Writer{DryRun: dryRun},
		fsWatcher:  fsWatcher,
	}
	for _, doc := range docs {
		g.byFilename[doc.Filename] = doc
	}
	g.debouncer = NewDebouncer(window, len(docs), g.onFlush)

	return g, nil
}

// Restores returns how many documents the guard has rewritten so far,
// or would have rewritten in dry-run mode.
func (g *Guard) Restores() int64 {
	return g.restores.Load()
}

// Run reconciles the whole kit once, then blocks handling filesystem events
// until ctx is canceled. The guard only ever touches kit filenames; anything
// else in the directory is left alone.
func (g *Guard) Run(ctx context.Context) error {
	if !g.writer.DryRun {
		if err := emitter.EnsureDir(g.dir); err != nil {
			return err
		}
	}
	g.reconcileAll()

	if err := g.fsWatcher.Add(g.dir); err != nil {
		return fmt.Errorf("watching %s: %w", g.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			g.debouncer.Stop()
			if err := g.fsWatcher.Close(); err != nil {
				output.Warn("closing filesystem watcher", "error", err)
			}
			output.Info("watch stopped", "restores", g.restores.Load())
			return nil

		case event, ok := <-g.fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			name := filepath.Base(event.Name)
			if _, mine := g.byFilename[name]; !mine {
				continue
			}
			output.Debug("file event", "file", name, "op", event.Op.String())
			g.debouncer.Add(FileEvent{Filename: name, At: time.Now()})

		case err, ok := <-g.fsWatcher.Errors:
			if !ok {
				return nil
			}
			output.Warn("watch error", "error", err)
		}
	}
}

func (g *Guard) reconcileAll() {
	names := make([]string, 0, len(g.docs))
	for _, doc := range g.docs {
		names = append(names, doc.Filename)
	}
	g.reconcile(names)
}

func (g *Guard) onFlush(events []FileEvent) {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Filename)
	}
	g.reconcile(names)
}

// reconcile rewrites each named document whose on-disk bytes differ from
// the catalog. Comparing before writing keeps the guard's own restores
// from retriggering it.
func (g *Guard) reconcile(filenames []string) {
	for _, name := range filenames {
		doc, ok := g.byFilename[name]
		if !ok {
			continue
		}
		onDisk, err := os.ReadFile(filepath.Join(g.dir, name))
		if err == nil && bytes.Equal(onDisk, doc.Content) {
			continue
		}
		absPath, werr := g.writer.WriteDocument(g.dir, doc)
		if werr != nil {
			output.Error("restore failed", "file", name, "error", werr)
			continue
		}
		g.restores.Add(1)
		if g.writer.DryRun {
			output.Info("Would restore " + absPath)
		} else {
			output.Info("Restored " + absPath)
		}
	}
}
