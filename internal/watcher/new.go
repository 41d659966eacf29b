package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// New creates a Watcher over dirs. Relevant events are coalesced for debounce
// before trigger is called.
func New(dirs []string, filter Filter, trigger TriggerFunc, debounce time.Duration, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("add watch path %s: %w", dir, err)
		}
	}

	if debounce <= 0 {
		debounce = 3 * time.Second
	}

	return &implWatcher{
		dirs:     dirs,
		filter:   filter,
		trigger:  trigger,
		debounce: debounce,
		logger:   log,
		watcher:  watcher,
	}, nil
}
