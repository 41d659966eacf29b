package extractor

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

type implFFmpeg struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewFFmpeg creates an Extractor that shells out to ffmpeg
func NewFFmpeg(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Extractor {
	return &implFFmpeg{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
