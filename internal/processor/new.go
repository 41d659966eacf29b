package processor

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/extractor"
	"github.com/nguyentantai21042004/transcript-flow/internal/ledger"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcriber"
)

type implProcessor struct {
	ledger      ledger.Ledger
	extractor   extractor.Extractor
	transcriber transcriber.Transcriber
	language    string
	logger      logger.Logger
}

// New creates a Processor. tr is borrowed, not owned: the caller closes it.
func New(l ledger.Ledger, ext extractor.Extractor, tr transcriber.Transcriber, language string, log logger.Logger) Processor {
	return &implProcessor{
		ledger:      l,
		extractor:   ext,
		transcriber: tr,
		language:    language,
		logger:      log,
	}
}
