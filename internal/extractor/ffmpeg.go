package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Extract writes the audio track into a hidden temp file next to outputPath
// and renames it into place, so an interrupted run never leaves a partial mp3
// under the final name.
func (f *implFFmpeg) Extract(ctx context.Context, inputPath, outputPath string) error {
	tmpPath := partialPath(outputPath)

	f.logger.Info(ctx, "Extracting audio: %s", filepath.Base(inputPath))

	// -vn: drop video
	// -q:a: VBR quality for libmp3lame (0 best, 9 worst)
	// -threads 0: use all available threads
	args := []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-c:a", f.cfg.AudioCodec,
		"-q:a", f.cfg.AudioQuality,
		"-threads", "0",
		tmpPath,
	}

	if _, err := f.executor.Execute(ctx, f.cfg.BinaryPath, args...); err != nil {
		f.removePartial(ctx, tmpPath)
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		f.removePartial(ctx, tmpPath)
		return fmt.Errorf("move extracted audio into place: %w", err)
	}

	f.logger.Info(ctx, "Audio extracted successfully: %s", filepath.Base(outputPath))
	return nil
}

// partialPath keeps the target extension last so ffmpeg still picks the right muxer.
func partialPath(outputPath string) string {
	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, "."+stem+"."+uuid.NewString()[:8]+".part"+ext)
}

func (f *implFFmpeg) removePartial(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		f.logger.Warn(ctx, "Failed to remove partial audio %s: %v", path, err)
	}
}
