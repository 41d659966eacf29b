package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

// whisperTranscriber runs the whisper.cpp CLI. The model is loaded by the
// binary on each call; the handle itself only carries configuration.
type whisperTranscriber struct {
	cfg        config.WhisperConfig
	ffmpegPath string
	executor   executor.Executor
	logger     logger.Logger
}

func (w *whisperTranscriber) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	workDir, err := os.MkdirTemp(w.cfg.TempDir, "whisper-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer w.cleanup(ctx, workDir)

	wavPath, err := w.prepareInput(ctx, audioPath, workDir)
	if err != nil {
		return "", err
	}

	// Whisper appends .txt to the prefix
	outputPrefix := filepath.Join(workDir, "transcript")

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.cfg.Threads, filepath.Base(audioPath))

	// -otxt: plain text output
	// -l: force language (prevents hallucinated language switches)
	// -np: no progress prints on stdout
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", wavPath,
		"-otxt",
		"-l", language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-np",
		"--output-file", outputPrefix,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	w.logger.Info(ctx, "Transcription completed: %s", filepath.Base(audioPath))
	return strings.TrimSpace(string(data)), nil
}

// prepareInput converts audioPath to 16kHz mono WAV, the only input whisper.cpp
// reads reliably.
func (w *whisperTranscriber) prepareInput(ctx context.Context, audioPath, workDir string) (string, error) {
	wavPath := filepath.Join(workDir, "input.wav")

	// -ar 16000: sample rate whisper was trained on
	// -ac 1: mono
	// -c:a pcm_s16le: 16-bit PCM
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := w.executor.Execute(ctx, w.ffmpegPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg prepare whisper input: %w", err)
	}
	return wavPath, nil
}

func (w *whisperTranscriber) cleanup(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		w.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		w.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}

func (w *whisperTranscriber) Close() error {
	return nil
}
