// Package ledger records which conversion stages of an item are complete.
//
// The only backend probes the output files themselves, so the filesystem is
// the state store and nothing else is persisted.
package ledger

import (
	"context"

	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

// Stage is one transformation step of an item's conversion.
type Stage string

const (
	StageExtract    Stage = "extract"
	StageTranscribe Stage = "transcribe"
)

// Ledger answers and records stage completion.
type Ledger interface {
	IsStageDone(ctx context.Context, item media.Item, stage Stage) (bool, error)
	MarkStageDone(ctx context.Context, item media.Item, stage Stage) error
}
