package pipeline

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
)

type implPipeline struct {
	resolver  Resolver
	processor processor.Processor
	logger    logger.Logger
}

// New creates a sequential Pipeline.
func New(res Resolver, proc processor.Processor, log logger.Logger) Pipeline {
	return &implPipeline{
		resolver:  res,
		processor: proc,
		logger:    log,
	}
}
