// Package pipeline drives one conversion run over a classified work set.
package pipeline

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/ledger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
)

// Pipeline processes every item of a work set exactly once, videos first.
type Pipeline interface {
	Run(ctx context.Context, ws media.WorkSet) Report
}

// Resolver computes the pending stages of an item.
type Resolver interface {
	Resolve(ctx context.Context, item media.Item) (ledger.State, error)
}

// Report is the result of one run.
type Report struct {
	RunID    string
	Stats    Stats
	Results  []processor.Outcome
	Started  time.Time
	Finished time.Time
}

// Failures returns the failed outcomes of r in processing order.
func (r Report) Failures() []processor.Outcome {
	var failed []processor.Outcome
	for _, o := range r.Results {
		if o.Status == processor.StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}
