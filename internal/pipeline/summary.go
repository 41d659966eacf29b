package pipeline

import (
	"fmt"

	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

// SummaryLines renders the end-of-run console summary.
func SummaryLines(r Report, layout media.Layout) []string {
	lines := []string{
		"========================================",
		fmt.Sprintf("Run %s complete", r.RunID),
		fmt.Sprintf("  Converted: %d", r.Stats.Converted),
		fmt.Sprintf("  Skipped:   %d", r.Stats.Skipped),
		fmt.Sprintf("  Failed:    %d", r.Stats.Failed),
		fmt.Sprintf("  Total:     %d", r.Stats.Total),
		fmt.Sprintf("Audio output: %s", layout.AudioDir),
		fmt.Sprintf("Text output:  %s", layout.TextDir),
	}
	for _, o := range r.Failures() {
		lines = append(lines, fmt.Sprintf("  FAILED %s: %v", o.Item.Path, o.Err))
	}
	return append(lines, "========================================")
}
