package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
)

// Run processes the videos of ws and then its audios, each in listing order.
// A failing item is recorded and the run moves on; nothing is retried.
func (p *implPipeline) Run(ctx context.Context, ws media.WorkSet) Report {
	report := Report{RunID: uuid.NewString(), Started: time.Now()}
	ctx = logger.WithRunID(ctx, report.RunID)

	items := make([]media.Item, 0, ws.Len())
	items = append(items, ws.Videos...)
	items = append(items, ws.Audios...)

	p.logger.Info(ctx, "Run started: %d videos, %d audios", len(ws.Videos), len(ws.Audios))

	agg := NewAggregator()
	for i, item := range items {
		switch {
		case i == 0 && len(ws.Videos) > 0:
			p.logger.Info(ctx, "--- Videos (%d) ---", len(ws.Videos))
		case i == len(ws.Videos):
			p.logger.Info(ctx, "--- Audio files (%d) ---", len(ws.Audios))
		}
		p.logger.Info(ctx, "[%d/%d] %s: %s", i+1, len(items), item.Kind, filepath.Base(item.Path))

		var out processor.Outcome
		if err := ctx.Err(); err != nil {
			out = processor.Failed(item, &processor.StageError{Kind: processor.ErrCancelled, Path: item.Path, Err: err})
		} else {
			out = p.processItem(ctx, item)
		}
		agg.Record(out)
	}

	report.Stats = agg.Summarize()
	report.Results = agg.Results()
	report.Finished = time.Now()

	p.logger.Info(ctx, "Run finished in %s: %d converted, %d skipped, %d failed, %d total",
		report.Finished.Sub(report.Started).Round(time.Millisecond),
		report.Stats.Converted, report.Stats.Skipped, report.Stats.Failed, report.Stats.Total)
	return report
}

// processItem resolves and executes one item. Panics from collaborators are
// turned into a failed outcome for this item only.
func (p *implPipeline) processItem(ctx context.Context, item media.Item) (out processor.Outcome) {
	startTime := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(ctx, "Panic while processing %s: %v\n%s", item.Path, r, debug.Stack())
			out = processor.Failed(item, &processor.StageError{
				Kind: processor.ErrInternal,
				Path: item.Path,
				Err:  fmt.Errorf("panic: %v", r),
			})
			out.Duration = time.Since(startTime)
		}
	}()

	st, err := p.resolver.Resolve(ctx, item)
	if err != nil {
		p.logger.Error(ctx, "Failed to resolve state of %s: %v", item.Path, err)
		out = processor.Failed(item, &processor.StageError{Kind: processor.ErrIO, Path: item.Path, Err: err})
		out.Duration = time.Since(startTime)
		return out
	}

	if st.Skip {
		p.logger.Info(ctx, "Skipping %s: outputs already exist", item.Stem)
		return processor.Outcome{Item: item, Status: processor.StatusSkipped}
	}

	return p.processor.Execute(ctx, item, st)
}
