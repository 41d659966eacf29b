package processor

import (
	"context"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/transcript-flow/internal/ledger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

// extractAudio writes the item's audio track to audioPath.
func (p *implProcessor) extractAudio(ctx context.Context, item media.Item, audioPath string) *StageError {
	p.logger.Debug(ctx, "Extract stage: %s -> %s", item.Path, audioPath)

	if err := os.MkdirAll(filepath.Dir(audioPath), 0755); err != nil {
		return stageErr(ErrIO, ledger.StageExtract, audioPath, err)
	}
	if err := p.extractor.Extract(ctx, item.Path, audioPath); err != nil {
		return stageErr(ErrExtraction, ledger.StageExtract, item.Path, err)
	}
	if err := p.ledger.MarkStageDone(ctx, item, ledger.StageExtract); err != nil {
		return stageErr(ErrExtraction, ledger.StageExtract, audioPath, err)
	}
	return nil
}
