package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/transcript-flow/internal/gemini"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// Gemini rejects inline request payloads above 20MB.
const maxInlineAudio = 20 << 20

const transcribePrompt = `Transcribe the attached audio verbatim. The spoken language is %q.
Return only the transcript as plain text: no timestamps, no speaker labels, no commentary.`

var audioMIMETypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".aac":  "audio/aac",
}

type geminiTranscriber struct {
	client *gemini.Client
	logger logger.Logger
}

func (g *geminiTranscriber) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	mimeType, ok := audioMIMETypes[strings.ToLower(filepath.Ext(audioPath))]
	if !ok {
		return "", fmt.Errorf("unsupported audio type %q", filepath.Ext(audioPath))
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	if len(data) > maxInlineAudio {
		return "", fmt.Errorf("audio %s is %d bytes, above the %d byte inline limit", filepath.Base(audioPath), len(data), maxInlineAudio)
	}

	g.logger.Info(ctx, "Transcribing with Gemini: %s", filepath.Base(audioPath))

	text, err := g.client.Generate(ctx,
		&genai.Part{Text: fmt.Sprintf(transcribePrompt, language)},
		&genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
	)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (g *geminiTranscriber) Close() error {
	return nil
}
