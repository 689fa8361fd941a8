package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler runs after a burst of catalog changes has settled
type Handler func(ctx context.Context)

// Watcher calls a Handler whenever a catalog changes on disk.
// A directory catalog is watched recursively; a manifest catalog is
// watched through its parent directory, filtered to the file itself.
type Watcher struct {
	path     string
	manifest bool
	debounce time.Duration
	handler  Handler
	logger   *log.Logger

	fsw *fsnotify.Watcher

	mu      sync.Mutex // serializes handler calls
	timerMu sync.Mutex
	timer   *time.Timer
}

func New(path string, debounce time.Duration, handler Handler) *Watcher {
	ext := strings.ToLower(filepath.Ext(path))
	return &Watcher{
		path:     filepath.Clean(path),
		manifest: ext == ".yaml" || ext == ".yml",
		debounce: debounce,
		handler:  handler,
		logger:   log.Default(),
	}
}

// SetLogger replaces the logger used for watcher errors
func (w *Watcher) SetLogger(l *log.Logger) {
	w.logger = l
}

// Open starts watching; events are delivered once Run is called
func (w *Watcher) Open() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.fsw = fsw

	if w.manifest {
		err = fsw.Add(filepath.Dir(w.path))
	} else {
		err = w.addTree(w.path)
	}
	if err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	return nil
}

// Paths returns the directories currently being watched
func (w *Watcher) Paths() []string {
	if w.fsw == nil {
		return nil
	}
	return w.fsw.WatchList()
}

// addTree watches dir and every non-hidden directory below it
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isIgnored(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// Run delivers debounced change notifications until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	if w.fsw == nil {
		if err := w.Open(); err != nil {
			return err
		}
	}
	defer w.fsw.Close()
	defer w.stopTimer()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.schedule(ctx)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if isIgnored(filepath.Base(event.Name)) {
		return false
	}

	if w.manifest {
		return filepath.Clean(event.Name) == w.path
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	// New folders need their own watch to see assets added inside them
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Printf("Failed to watch %s: %v", event.Name, err)
			}
		}
	}

	return true
}

func (w *Watcher) schedule(ctx context.Context) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		w.handler(ctx)
	})
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
}

// isIgnored filters hidden files, editor droppings and our own temp files
func isIgnored(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") || strings.HasSuffix(name, "~")
}
