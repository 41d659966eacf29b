// Package processor runs the pending conversion stages of one item.
package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/ledger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

// Processor executes the stages a resolved State marks as pending. It must
// not be called for a State with Skip set.
type Processor interface {
	Execute(ctx context.Context, item media.Item, st ledger.State) Outcome
}

// Status is the final classification of an item within a run.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome is the result of processing one item. Err is set only when Status
// is StatusFailed and is then always a *StageError.
type Outcome struct {
	Item     media.Item
	Status   Status
	Stage    ledger.Stage
	Err      error
	Duration time.Duration
}

// Failed builds a failed Outcome for item.
func Failed(item media.Item, err *StageError) Outcome {
	return Outcome{Item: item, Status: StatusFailed, Stage: err.Stage, Err: err}
}
