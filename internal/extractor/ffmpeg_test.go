package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// fakeExecutor records calls and writes the last argument as the output file.
type fakeExecutor struct {
	calls   [][]string
	content string
	err     error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	out := args[len(args)-1]
	if f.content != "" {
		if err := os.WriteFile(out, []byte(f.content), 0644); err != nil {
			return "", err
		}
	}
	return "", f.err
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func testConfig() config.FFmpegConfig {
	return config.FFmpegConfig{BinaryPath: "ffmpeg", AudioCodec: "libmp3lame", AudioQuality: "2"}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "talk.mp3")
	exec := &fakeExecutor{content: "mp3-bytes"}

	ext := NewFFmpeg(testConfig(), exec, logger.Discard())
	if err := ext.Extract(context.Background(), "/in/talk.mp4", out); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("output = %q", data)
	}

	if len(exec.calls) != 1 {
		t.Fatalf("executor calls = %d, want 1", len(exec.calls))
	}
	call := strings.Join(exec.calls[0], " ")
	for _, want := range []string{"ffmpeg", "-i /in/talk.mp4", "-vn", "-c:a libmp3lame", "-q:a 2"} {
		if !strings.Contains(call, want) {
			t.Errorf("command %q missing %q", call, want)
		}
	}
	tmp := exec.calls[0][len(exec.calls[0])-1]
	if tmp == out || !strings.HasPrefix(filepath.Base(tmp), ".talk.") || filepath.Ext(tmp) != ".mp3" {
		t.Errorf("ffmpeg should write a hidden .mp3 temp file, got %q", tmp)
	}

	assertOnlyFile(t, dir, "talk.mp3")
}

func TestExtractFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "talk.mp3")
	exec := &fakeExecutor{content: "partial", err: errors.New("exit status 1")}

	ext := NewFFmpeg(testConfig(), exec, logger.Discard())
	err := ext.Extract(context.Background(), "/in/talk.mp4", out)
	if err == nil {
		t.Fatal("Extract() should fail when ffmpeg fails")
	}
	if !strings.Contains(err.Error(), "ffmpeg extract audio") {
		t.Errorf("error = %v", err)
	}

	assertOnlyFile(t, dir)
}

func TestPartialPath(t *testing.T) {
	p := partialPath("/out/audio/talk.final.mp3")
	if filepath.Dir(p) != "/out/audio" {
		t.Errorf("partialPath dir = %q", filepath.Dir(p))
	}
	base := filepath.Base(p)
	if !strings.HasPrefix(base, ".talk.final.") || !strings.HasSuffix(base, ".part.mp3") {
		t.Errorf("partialPath = %q", p)
	}
	if partialPath("/out/audio/talk.mp3") == partialPath("/out/audio/talk.mp3") {
		t.Error("partialPath should be unique per call")
	}
}

func assertOnlyFile(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if len(got) != len(names) {
		t.Fatalf("dir contents = %v, want %v", got, names)
	}
	for i := range names {
		if got[i] != names[i] {
			t.Errorf("dir contents = %v, want %v", got, names)
		}
	}
}
