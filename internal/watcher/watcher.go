package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

type implWatcher struct {
	dirs     []string
	filter   Filter
	trigger  TriggerFunc
	debounce time.Duration
	logger   logger.Logger
	watcher  *fsnotify.Watcher
}

// Start blocks until ctx is cancelled. Triggers run on this goroutine, so a
// pass always finishes before the next one starts.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (debounce %s). Monitoring: %s", w.debounce, strings.Join(w.dirs, ", "))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug(ctx, "Media change detected: %s (%s)", event.Name, event.Op)

			// Wait for the writer to go quiet before running
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Info(ctx, "Input changed, starting conversion pass")
			if err := w.trigger(ctx); err != nil {
				w.logger.Error(ctx, "Conversion pass failed: %v", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return isMediaFile(event.Name, w.filter)
}

// isMediaFile ignores hidden files, which covers the pipeline's own temp outputs.
func isMediaFile(path string, filter Filter) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return filter(name)
}

// MediaFilter accepts names matched by any of the given extension matchers.
func MediaFilter(matchers ...func(string) bool) Filter {
	return func(name string) bool {
		for _, m := range matchers {
			if m(name) {
				return true
			}
		}
		return false
	}
}

