package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

const summaryPrompt = `You are an expert at analysing recorded talks and lectures. Using the transcript below, write a DETAILED summary in the language with code %q.

Requirements:
- Start with a one-sentence headline describing the topic
- List ALL main points in the order they appear
- Explain each point, including important caveats, tips and warnings
- Keep domain-specific English terms in parentheses
- Use markdown: headings, bullet points, bold for key terms
- Finish with an "Important notes" section if anything needs emphasis

Transcript:
---
%s
---`

// SummarizeAll summarizes every transcript in textDir that has no summary in
// destDir yet. A failing transcript is logged and counted; the rest continue.
func (s *implSummarizer) SummarizeAll(ctx context.Context, textDir, destDir string) (Result, error) {
	var res Result

	files, err := discoverTranscripts(textDir)
	if err != nil {
		return res, fmt.Errorf("discover transcripts: %w", err)
	}

	if len(files) == 0 {
		s.logger.Info(ctx, "No transcripts found in %s", textDir)
		return res, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return res, fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d transcripts to check for summaries", len(files))

	for i, textPath := range files {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		stem := media.Stem(textPath)
		mdPath := filepath.Join(destDir, stem+".md")

		done, err := exists(mdPath)
		if err != nil {
			s.logger.Error(ctx, "Failed to check %s: %v", mdPath, err)
			res.Failed++
			continue
		}
		if done {
			res.Skipped++
			continue
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(files), stem)
		if err := s.summarize(ctx, stem, textPath, destDir); err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", stem, err)
			res.Failed++
			continue
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", stem, mdPath)
		res.Summarized++
	}

	s.logger.Info(ctx, "Summary complete: %d summarized, %d skipped, %d failed", res.Summarized, res.Skipped, res.Failed)
	return res, nil
}

// summarize writes <stem>.docx and then <stem>.md, which marks completion.
func (s *implSummarizer) summarize(ctx context.Context, stem, textPath, destDir string) error {
	content, err := os.ReadFile(textPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return fmt.Errorf("transcript is empty")
	}

	summary, err := s.client.Generate(ctx, genai.NewPartFromText(fmt.Sprintf(summaryPrompt, s.language, content)))
	if err != nil {
		return err
	}
	summary = strings.TrimSpace(summary)

	docxPath := filepath.Join(destDir, stem+".docx")
	if err := markdownToDocx(stem, summary, docxPath); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		stem,
		time.Now().Format("2006-01-02 15:04"),
		summary,
	)

	mdPath := filepath.Join(destDir, stem+".md")
	tmp := filepath.Join(destDir, "."+stem+".md.tmp")
	if err := os.WriteFile(tmp, []byte(md), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	if err := os.Rename(tmp, mdPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == media.TextExt {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
