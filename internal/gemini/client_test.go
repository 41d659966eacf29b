package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

func TestGenerateRotatesOnRateLimit(t *testing.T) {
	var usedKeys []string
	fn := func(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error) {
		usedKeys = append(usedKeys, apiKey)
		if apiKey == "k1" {
			return "", errors.New("Error 429, RESOURCE_EXHAUSTED")
		}
		return "ok from " + apiKey, nil
	}

	c := NewWithGenerator([]string{"k1", "k2"}, "gemini-test", logger.Discard(), fn)
	got, err := c.Generate(context.Background(), &genai.Part{Text: "hi"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "ok from k2" {
		t.Errorf("Generate() = %q", got)
	}
	if strings.Join(usedKeys, ",") != "k1,k2" {
		t.Errorf("keys used = %v", usedKeys)
	}

	// The healthy key stays current for the next call.
	usedKeys = nil
	if _, err := c.Generate(context.Background(), &genai.Part{Text: "again"}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(usedKeys, ",") != "k2" {
		t.Errorf("second call keys = %v, want [k2]", usedKeys)
	}
}

func TestGenerateAllKeysExhausted(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error) {
		calls++
		return "", errors.New("quota exceeded")
	}

	c := NewWithGenerator([]string{"a", "b", "c"}, "m", logger.Discard(), fn)
	_, err := c.Generate(context.Background(), &genai.Part{Text: "x"})
	if err == nil || !strings.Contains(err.Error(), "all API keys exhausted") {
		t.Fatalf("Generate() error = %v, want exhaustion", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestGenerateNonRetryableError(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error) {
		calls++
		return "", errors.New("400 invalid argument")
	}

	c := NewWithGenerator([]string{"a", "b"}, "m", logger.Discard(), fn)
	if _, err := c.Generate(context.Background(), &genai.Part{Text: "x"}); err == nil {
		t.Fatal("Generate() should fail")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no rotation on non rate-limit errors)", calls)
	}
}

func TestGenerateSendsUserTurn(t *testing.T) {
	var got []*genai.Content
	fn := func(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error) {
		got = contents
		if model != "gemini-test" {
			t.Errorf("model = %q", model)
		}
		return "", nil
	}

	c := NewWithGenerator([]string{"k"}, "gemini-test", logger.Discard(), fn)
	if _, err := c.Generate(context.Background(), &genai.Part{Text: "a"}, &genai.Part{Text: "b"}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Role != "user" || len(got[0].Parts) != 2 {
		t.Errorf("contents = %+v", got)
	}
}

func TestGenerateNoKeys(t *testing.T) {
	c := New(nil, "m", logger.Discard())
	if _, err := c.Generate(context.Background()); err == nil {
		t.Error("Generate() should fail without keys")
	}
}
