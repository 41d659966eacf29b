package processor

import (
	"context"

	"github.com/nguyentantai21042004/transcript-flow/internal/ledger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

// transcribe converts audioPath to text and stores it at textPath.
func (p *implProcessor) transcribe(ctx context.Context, item media.Item, audioPath, textPath string) *StageError {
	p.logger.Debug(ctx, "Transcribe stage: %s -> %s", audioPath, textPath)

	text, err := p.transcriber.Transcribe(ctx, audioPath, p.language)
	if err != nil {
		return stageErr(ErrTranscription, ledger.StageTranscribe, audioPath, err)
	}

	if err := writeFileAtomic(textPath, []byte(text), 0644); err != nil {
		return stageErr(ErrIO, ledger.StageTranscribe, textPath, err)
	}
	if err := p.ledger.MarkStageDone(ctx, item, ledger.StageTranscribe); err != nil {
		return stageErr(ErrIO, ledger.StageTranscribe, textPath, err)
	}

	p.logger.Info(ctx, "Transcript written: %s (%d bytes)", textPath, len(text))
	return nil
}
