package linter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches Starlark files and directories for changes so the
// driver can re-lint them.
type Watcher struct {
	mu sync.RWMutex

	// fsWatcher is the underlying file watcher.
	fsWatcher *fsnotify.Watcher

	// roots is the set of files and directories handed to Add.
	roots map[string]bool

	// Events channel receives file change notifications.
	Events chan WatchEvent

	// Errors channel receives watcher errors.
	Errors chan error

	// done signals the watcher to stop.
	done chan struct{}
}

// WatchEvent represents a change to a lintable file.
type WatchEvent struct {
	// File is the file that changed.
	File string

	// Op is the operation (write, create, remove, etc.).
	Op fsnotify.Op
}

// NewWatcher creates a new file watcher.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		roots:     make(map[string]bool),
		Events:    make(chan WatchEvent, 100),
		Errors:    make(chan error, 10),
		done:      make(chan struct{}),
	}

	go w.run()

	return w, nil
}

// Add registers a file or directory to watch. Directories are watched
// recursively so that new subdirectories pick up changes too.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("getting absolute path: %w", err)
	}

	if w.roots[absPath] {
		return nil
	}
	w.roots[absPath] = true

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("watching %s: %w", absPath, err)
	}

	if !info.IsDir() {
		if err := w.fsWatcher.Add(absPath); err != nil {
			return fmt.Errorf("watching %s: %w", absPath, err)
		}
		return nil
	}

	return filepath.WalkDir(absPath, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		// Skip hidden directories like .git
		if name := d.Name(); name != "." && name[0] == '.' && p != absPath {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// run processes filesystem events.
func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		}
	}
}

// handleEvent forwards changes to lintable files and starts watching
// newly created directories.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	absPath, _ := filepath.Abs(event.Name)

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(absPath); err == nil && info.IsDir() {
			_ = w.fsWatcher.Add(absPath)
			return
		}
	}

	if !isStarlarkFile(absPath) {
		return
	}

	w.Events <- WatchEvent{
		File: absPath,
		Op:   event.Op,
	}
}

// WatchedRoots returns the paths handed to Add.
func (w *Watcher) WatchedRoots() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var roots []string
	for r := range w.roots {
		roots = append(roots, r)
	}
	return roots
}
