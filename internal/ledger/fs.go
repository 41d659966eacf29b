package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

type fsLedger struct {
	layout        media.Layout
	minAudioBytes int64
	minTextBytes  int64
}

// NewFS returns a Ledger backed by the output files under layout. A stage
// counts as done when its output is a regular file of at least the given size.
func NewFS(layout media.Layout, minAudioBytes, minTextBytes int64) Ledger {
	return &fsLedger{
		layout:        layout,
		minAudioBytes: minAudioBytes,
		minTextBytes:  minTextBytes,
	}
}

func (l *fsLedger) IsStageDone(ctx context.Context, item media.Item, stage Stage) (bool, error) {
	out := l.layout.Outputs(item)
	switch stage {
	case StageExtract:
		if item.Kind == media.KindAudio {
			return true, nil
		}
		return present(out.Audio, l.minAudioBytes)
	case StageTranscribe:
		return present(out.Text, l.minTextBytes)
	default:
		return false, fmt.Errorf("unknown stage %q", stage)
	}
}

// MarkStageDone checks that the stage's output is in place; the file itself is the record.
func (l *fsLedger) MarkStageDone(ctx context.Context, item media.Item, stage Stage) error {
	done, err := l.IsStageDone(ctx, item, stage)
	if err != nil {
		return err
	}
	if !done {
		return fmt.Errorf("%s output for %s is missing or below the size floor", stage, item.Stem)
	}
	return nil
}

func present(path string, minBytes int64) (bool, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return false, fmt.Errorf("%s is not a regular file", path)
	}
	return fi.Size() >= minBytes, nil
}
