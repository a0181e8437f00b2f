// Package watch reports changes to the file a task list is stored in.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher emits on Changes after the watched file has been written, created
// or renamed into place. Bursts within the debounce window collapse into one.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	changes  chan struct{}
	debounce time.Duration
	log      *slog.Logger
}

// New watches path. The parent directory is watched rather than the file so
// that atomic replace-by-rename is seen.
func New(path string, log *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		path:     abs,
		watcher:  fw,
		changes:  make(chan struct{}, 1),
		debounce: defaultDebounce,
		log:      log,
	}, nil
}

// Changes is closed when Run returns.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Run processes events until ctx is done or the watcher fails.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.changes)
	defer w.watcher.Close()

	name := filepath.Base(w.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("Task file change detected", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("File watcher error", "error", err)
		}
	}
}
