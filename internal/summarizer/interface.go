// Package summarizer turns finished transcripts into Markdown and Word summaries.
package summarizer

import "context"

// Summarizer reads transcripts from textDir and writes summaries to destDir.
// Transcripts are never moved or modified.
type Summarizer interface {
	SummarizeAll(ctx context.Context, textDir, destDir string) (Result, error)
}

// Result counts the transcripts handled by one SummarizeAll call.
type Result struct {
	Summarized int
	Skipped    int
	Failed     int
}
