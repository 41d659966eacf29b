// Package gemini calls the Gemini API with a pool of API keys, moving to the
// next key whenever one is rate limited.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// GenerateFunc performs one GenerateContent call with a single key.
type GenerateFunc func(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error)

// Client is not safe for concurrent use.
type Client struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
	generate   GenerateFunc
}

// New creates a Client that rotates through apiKeys.
func New(apiKeys []string, model string, log logger.Logger) *Client {
	return NewWithGenerator(apiKeys, model, log, generateContent)
}

// NewWithGenerator is New with the API call replaced, for tests and alternative transports.
func NewWithGenerator(apiKeys []string, model string, log logger.Logger, fn GenerateFunc) *Client {
	return &Client{
		apiKeys:  apiKeys,
		model:    model,
		logger:   log,
		generate: fn,
	}
}

// Generate sends parts as one user turn and returns the concatenated text of
// the first candidate. Rate-limited keys are rotated; every key is tried once.
func (c *Client) Generate(ctx context.Context, parts ...*genai.Part) (string, error) {
	if len(c.apiKeys) == 0 {
		return "", errors.New("no Gemini API keys configured")
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}

	var lastErr error
	for range len(c.apiKeys) {
		text, err := c.generate(ctx, c.apiKeys[c.currentKey], c.model, contents)
		if err == nil {
			return text, nil
		}
		if !isRateLimited(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}
		c.logger.Warn(ctx, "Key %d rate limited, rotating...", c.currentKey+1)
		c.rotateKey()
		lastErr = err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *Client) rotateKey() {
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func generateContent(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		return text.String(), nil
	}

	return "", errors.New("empty response from Gemini")
}
