package processor

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/transcript-flow/internal/ledger"
)

var (
	ErrExtraction    = errors.New("extraction failed")
	ErrTranscription = errors.New("transcription failed")
	ErrIO            = errors.New("output write failed")
	ErrCancelled     = errors.New("run cancelled")
	ErrInternal      = errors.New("internal error")
)

// StageError is an item-scoped failure. Kind is one of the sentinels above so
// callers can use errors.Is without inspecting the cause.
type StageError struct {
	Kind  error
	Stage ledger.Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func stageErr(kind error, stage ledger.Stage, path string, err error) *StageError {
	return &StageError{Kind: kind, Stage: stage, Path: path, Err: err}
}
