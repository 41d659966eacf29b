package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/ledger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

// Execute runs the pending stages of item in order. A failed extraction
// aborts the item before transcription is attempted.
func (p *implProcessor) Execute(ctx context.Context, item media.Item, st ledger.State) Outcome {
	startTime := time.Now()

	p.logger.Debug(ctx, "Processing %s (extract=%t, transcribe=%t)", item.Path, st.NeedExtract, st.NeedTranscribe)

	// Step 1: Extract audio
	if st.NeedExtract {
		if serr := p.extractAudio(ctx, item, st.Outputs.Audio); serr != nil {
			return p.fail(ctx, item, serr, startTime)
		}
	}

	// Step 2: Transcribe
	if st.NeedTranscribe {
		if serr := p.transcribe(ctx, item, st.Outputs.Audio, st.Outputs.Text); serr != nil {
			return p.fail(ctx, item, serr, startTime)
		}
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "Converted %s in %s", item.Stem, duration.Round(time.Millisecond))
	return Outcome{Item: item, Status: StatusConverted, Duration: duration}
}

func (p *implProcessor) fail(ctx context.Context, item media.Item, serr *StageError, startTime time.Time) Outcome {
	p.logger.Error(ctx, "Failed %s at %s stage: %v", item.Stem, serr.Stage, serr)
	out := Failed(item, serr)
	out.Duration = time.Since(startTime)
	return out
}
