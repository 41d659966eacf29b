package summarizer

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/gemini"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

type implSummarizer struct {
	client   *gemini.Client
	language string
	logger   logger.Logger
}

// New creates a Summarizer that writes summaries in language.
func New(client *gemini.Client, language string, log logger.Logger) Summarizer {
	return &implSummarizer{
		client:   client,
		language: language,
		logger:   log,
	}
}
