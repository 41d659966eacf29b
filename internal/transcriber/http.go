package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// httpTranscriber uploads audio to a speech-to-text service:
//
//	POST <url>/transcribe  multipart: file, language
//	200 {"text": "..."}
type httpTranscriber struct {
	url        string
	client     *http.Client
	newBackOff func() backoff.BackOff
	logger     logger.Logger
}

type transcribeResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func newHTTP(url string, client *http.Client, newBackOff func() backoff.BackOff, log logger.Logger) *httpTranscriber {
	return &httpTranscriber{
		url:        strings.TrimRight(url, "/"),
		client:     client,
		newBackOff: newBackOff,
		logger:     log,
	}
}

func exponential(maxElapsed time.Duration) func() backoff.BackOff {
	return func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = maxElapsed
		return b
	}
}

func (h *httpTranscriber) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	body, contentType, err := buildForm(audioPath, language)
	if err != nil {
		return "", err
	}

	requestID := uuid.NewString()
	endpoint := h.url + "/transcribe"
	h.logger.Info(ctx, "Uploading %s to transcription service (request %s)", filepath.Base(audioPath), requestID)

	var text string
	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-Request-ID", requestID)

		resp, err := h.client.Do(req)
		if err != nil {
			h.logger.Warn(ctx, "Transcription request attempt %d failed: %v", attempt, err)
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			h.logger.Warn(ctx, "Transcription service returned %d on attempt %d", resp.StatusCode, attempt)
			return fmt.Errorf("server error %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}

		var parsed transcribeResponse
		jsonErr := json.Unmarshal(data, &parsed)
		if resp.StatusCode >= 400 {
			reason := strings.TrimSpace(string(data))
			if jsonErr == nil && parsed.Error != "" {
				reason = parsed.Error
			}
			return backoff.Permanent(fmt.Errorf("client error %d: %s", resp.StatusCode, reason))
		}
		if jsonErr != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", jsonErr))
		}

		text = parsed.Text
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(h.newBackOff(), ctx)); err != nil {
		return "", fmt.Errorf("transcription service: %w", err)
	}

	return strings.TrimSpace(text), nil
}

func buildForm(audioPath, language string) ([]byte, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("language", language); err != nil {
		return nil, "", err
	}
	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read audio: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func (h *httpTranscriber) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
