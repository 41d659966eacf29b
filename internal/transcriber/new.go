package transcriber

import (
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/gemini"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

// New creates the Transcriber selected by cfg.Transcriber.Backend. gem may be
// nil unless the gemini backend is selected.
func New(cfg *config.Config, exec executor.Executor, gem *gemini.Client, log logger.Logger) (Transcriber, error) {
	switch cfg.Transcriber.Backend {
	case "whisper", "":
		return &whisperTranscriber{
			cfg:        cfg.Whisper,
			ffmpegPath: cfg.FFmpeg.BinaryPath,
			executor:   exec,
			logger:     log,
		}, nil
	case "http":
		return newHTTP(cfg.HTTP.URL, &http.Client{Timeout: cfg.HTTP.Timeout}, exponential(cfg.HTTP.MaxElapsed), log), nil
	case "gemini":
		if gem == nil {
			return nil, fmt.Errorf("gemini backend needs a Gemini client")
		}
		return &geminiTranscriber{client: gem, logger: log}, nil
	default:
		return nil, fmt.Errorf("transcriber: unknown backend %q (supported: whisper, http, gemini)", cfg.Transcriber.Backend)
	}
}
