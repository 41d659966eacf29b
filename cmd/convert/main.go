package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
	"github.com/nguyentantai21042004/transcript-flow/internal/watcher"
)

func main() {
	_ = godotenv.Load() // loads .env

	// Load configuration
	configPath := os.Getenv("TRANSCRIPT_FLOW_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript Flow")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Transcriber backend: %s (language %s)", cfg.Transcriber.Backend, cfg.Transcriber.Language)
	log.Info(ctx, "Configuration loaded from %s", configPath)

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	a := newApp(cfg, log)
	defer a.close(ctx)

	if err := a.runOnce(ctx); err != nil {
		log.Error(ctx, "Conversion failed: %v", err)
		a.close(ctx)
		os.Exit(1)
	}

	if !cfg.Watch.Enabled {
		return
	}

	vexts := media.NewExtensionSet(cfg.Media.VideoExtensions...)
	aexts := media.NewExtensionSet(cfg.Media.AudioExtensions...)
	w, err := watcher.New(
		[]string{cfg.Paths.Video, cfg.Paths.Audio},
		watcher.MediaFilter(vexts.Match, aexts.Match),
		a.runOnce,
		cfg.Watch.Debounce,
		log,
	)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		a.close(ctx)
		os.Exit(1)
	}
	defer w.Stop()

	log.Info(ctx, "Watching for new media. Press Ctrl+C to stop")
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Video,
		cfg.Paths.Audio,
		cfg.Paths.Text,
	}
	if cfg.Summary.Enabled {
		dirs = append(dirs, cfg.Paths.Summary)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
