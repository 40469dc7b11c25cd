// Package watch runs a callback when matching files change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/broady/stubgen/internal/discover"
	"github.com/broady/stubgen/internal/logger"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 300 * time.Millisecond

// Filter reports whether a changed path is relevant.
type Filter func(path string) bool

// ChangeFunc is called once per settled burst of changes with the
// changed paths in lexical order. A returned error is logged, not fatal.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches directory trees and individual files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	filter   Filter
	debounce time.Duration
	files    map[string]bool // explicitly watched files
}

// New watches each path: directories recursively (skipping the directories
// discover skips), files through their parent directory.
func New(paths []string, filter Filter, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{fsw: fsw, filter: filter, debounce: debounce, files: map[string]bool{}}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", p, err)
	}
	if !info.IsDir() {
		w.files[filepath.Clean(p)] = true
		return w.fsw.Add(filepath.Dir(p))
	}
	return w.addTree(p)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && discover.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

// relevant reports whether an event path should trigger a run.
func (w *Watcher) relevant(p string) bool {
	if w.files[filepath.Clean(p)] {
		return true
	}
	return w.filter == nil || w.filter(p)
}

// Run delivers debounced changes to onChange until ctx is done,
// then closes the watcher.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	defer w.fsw.Close()

	pending := map[string]bool{}
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !discover.SkipDir(info.Name()) {
					if err := w.addTree(event.Name); err != nil {
						logger.Logger.Warnw("watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			logger.Logger.Debugw("change detected", "path", event.Name, "op", event.Op.String())
			pending[event.Name] = true
			fire = time.After(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Logger.Warnw("watcher error", "error", err)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)

			if err := onChange(ctx, changed); err != nil {
				logger.Logger.Errorw("regenerate failed", "error", err)
			}
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Extensions returns a Filter matching files by extension, e.g. ".php".
func Extensions(exts ...string) Filter {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[e] = true
	}
	return func(p string) bool { return set[filepath.Ext(p)] }
}
