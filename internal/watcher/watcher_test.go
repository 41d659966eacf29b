package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

func testFilter() Filter {
	return MediaFilter(media.DefaultVideoExtensions().Match, media.DefaultAudioExtensions().Match)
}

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/in/talk.mp4", true},
		{"/in/TALK.MKV", true},
		{"/in/memo.flac", true},
		{"/in/notes.pdf", false},
		{"/in/.talk.1a2b3c4d.part.mp3", false},
		{"/in/.DS_Store", false},
		{"/in/noext", false},
	}

	filter := testFilter()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isMediaFile(tt.path, filter); got != tt.want {
				t.Errorf("isMediaFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestWatcherTriggersOnMedia(t *testing.T) {
	dir := t.TempDir()
	var runs int32
	triggered := make(chan struct{}, 4)

	w, err := New([]string{dir}, testFilter(), func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		select {
		case triggered <- struct{}{}:
		default:
		}
		return nil
	}, 50*time.Millisecond, logger.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Irrelevant and hidden files never trigger.
	for _, name := range []string{"notes.pdf", ".a.1234.part.mp3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(300 * time.Millisecond)
	if n := atomic.LoadInt32(&runs); n != 0 {
		t.Fatalf("runs = %d after irrelevant files, want 0", n)
	}

	for _, name := range []string{"a.mp4", "b.mp3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-triggered:
	case <-time.After(5 * time.Second):
		t.Fatal("trigger not called")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, testFilter(), nil, time.Second, logger.Discard())
	if err == nil {
		t.Error("New() should fail for a missing directory")
	}
}
