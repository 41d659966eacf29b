package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcript-flow/internal/ledger"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

type fakeExtractor struct {
	calls int
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, inputPath, outputPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte("mp3"), 0644)
}

type fakeTranscriber struct {
	calls     int
	audioPath string
	language  string
	text      string
	err       error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	f.calls++
	f.audioPath = audioPath
	f.language = language
	return f.text, f.err
}

func (f *fakeTranscriber) Close() error { return nil }

type fixture struct {
	layout   media.Layout
	resolver *ledger.Resolver
	ext      *fakeExtractor
	tr       *fakeTranscriber
	proc     Processor
	videoDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		layout: media.Layout{
			AudioDir: filepath.Join(root, "audio"),
			TextDir:  filepath.Join(root, "text"),
		},
		ext:      &fakeExtractor{},
		tr:       &fakeTranscriber{text: "hello"},
		videoDir: filepath.Join(root, "video"),
	}
	for _, d := range []string{f.layout.AudioDir, f.layout.TextDir, f.videoDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	l := ledger.NewFS(f.layout, 1, 0)
	f.resolver = ledger.NewResolver(l, f.layout)
	f.proc = New(l, f.ext, f.tr, "ko", logger.Discard())
	return f
}

func (f *fixture) video(t *testing.T, name string) media.Item {
	t.Helper()
	path := filepath.Join(f.videoDir, name)
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}
	return media.NewItem(path, media.KindVideo)
}

func (f *fixture) resolve(t *testing.T, item media.Item) ledger.State {
	t.Helper()
	st, err := f.resolver.Resolve(context.Background(), item)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return st
}

func TestExecuteVideo(t *testing.T) {
	f := newFixture(t)
	item := f.video(t, "talk.mp4")

	out := f.proc.Execute(context.Background(), item, f.resolve(t, item))
	if out.Status != StatusConverted || out.Err != nil {
		t.Fatalf("Execute() = %+v", out)
	}
	if f.ext.calls != 1 || f.tr.calls != 1 {
		t.Errorf("calls extract=%d transcribe=%d, want 1/1", f.ext.calls, f.tr.calls)
	}
	if f.tr.audioPath != filepath.Join(f.layout.AudioDir, "talk.mp3") || f.tr.language != "ko" {
		t.Errorf("transcriber got %q (%s)", f.tr.audioPath, f.tr.language)
	}

	data, err := os.ReadFile(filepath.Join(f.layout.TextDir, "talk.txt"))
	if err != nil || string(data) != "hello" {
		t.Errorf("transcript = %q, %v", data, err)
	}
	if st := f.resolve(t, item); !st.Skip {
		t.Errorf("item should resolve to skip after conversion, got %+v", st)
	}
}

func TestExecuteSkipsSatisfiedExtraction(t *testing.T) {
	f := newFixture(t)
	item := f.video(t, "talk.mp4")
	if err := os.WriteFile(filepath.Join(f.layout.AudioDir, "talk.mp3"), []byte("mp3"), 0644); err != nil {
		t.Fatal(err)
	}

	st := f.resolve(t, item)
	if st.NeedExtract || !st.NeedTranscribe {
		t.Fatalf("state = %+v, want transcribe only", st)
	}

	out := f.proc.Execute(context.Background(), item, st)
	if out.Status != StatusConverted {
		t.Fatalf("Execute() = %+v", out)
	}
	if f.ext.calls != 0 {
		t.Errorf("extractor called %d times, want 0", f.ext.calls)
	}
}

func TestExecuteAudioItem(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.layout.AudioDir, "memo.wav")
	if err := os.WriteFile(path, []byte("wav"), 0644); err != nil {
		t.Fatal(err)
	}
	item := media.NewItem(path, media.KindAudio)

	out := f.proc.Execute(context.Background(), item, f.resolve(t, item))
	if out.Status != StatusConverted {
		t.Fatalf("Execute() = %+v", out)
	}
	if f.ext.calls != 0 {
		t.Errorf("audio items must not be extracted")
	}
	if f.tr.audioPath != path {
		t.Errorf("transcriber got %q, want the item itself", f.tr.audioPath)
	}
}

func TestExecuteExtractionFailure(t *testing.T) {
	f := newFixture(t)
	f.ext.err = errors.New("invalid data found when processing input")
	item := f.video(t, "broken.mp4")

	out := f.proc.Execute(context.Background(), item, f.resolve(t, item))
	if out.Status != StatusFailed {
		t.Fatalf("Status = %s, want failed", out.Status)
	}
	if !errors.Is(out.Err, ErrExtraction) || out.Stage != ledger.StageExtract {
		t.Errorf("Err = %v (stage %s), want extraction failure", out.Err, out.Stage)
	}
	var serr *StageError
	if !errors.As(out.Err, &serr) || serr.Path != item.Path {
		t.Errorf("StageError = %+v", serr)
	}
	if f.tr.calls != 0 {
		t.Error("transcription must not run after a failed extraction")
	}
	assertEmpty(t, f.layout.TextDir)
}

func TestExecuteTranscriptionFailure(t *testing.T) {
	f := newFixture(t)
	f.tr.err = errors.New("model crashed")
	item := f.video(t, "talk.mp4")

	out := f.proc.Execute(context.Background(), item, f.resolve(t, item))
	if !errors.Is(out.Err, ErrTranscription) || out.Stage != ledger.StageTranscribe {
		t.Fatalf("Execute() = %+v, want transcription failure", out)
	}
	assertEmpty(t, f.layout.TextDir)

	// The extracted audio survives, so the next run only retries transcription.
	st := f.resolve(t, item)
	if st.NeedExtract || !st.NeedTranscribe {
		t.Errorf("state after failure = %+v", st)
	}
}

func TestExecuteWriteFailure(t *testing.T) {
	f := newFixture(t)
	item := f.video(t, "talk.mp4")
	st := f.resolve(t, item)
	// A directory in place of the transcript makes the rename fail.
	if err := os.Mkdir(st.Outputs.Text, 0755); err != nil {
		t.Fatal(err)
	}

	out := f.proc.Execute(context.Background(), item, st)
	if !errors.Is(out.Err, ErrIO) {
		t.Fatalf("Execute() = %+v, want IO failure", out)
	}
	entries, _ := os.ReadDir(f.layout.TextDir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	if err := writeFileAtomic(path, []byte("first"), 0644); err != nil {
		t.Fatalf("writeFileAtomic() error = %v", err)
	}
	if err := writeFileAtomic(path, []byte("second"), 0644); err != nil {
		t.Fatalf("writeFileAtomic() overwrite error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "second" {
		t.Errorf("content = %q, %v", data, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only out.txt", len(entries))
	}
}

func TestStageErrorMessage(t *testing.T) {
	err := stageErr(ErrIO, ledger.StageTranscribe, "/out/a.txt", errors.New("disk full"))
	if got := err.Error(); got != "output write failed: /out/a.txt: disk full" {
		t.Errorf("Error() = %q", got)
	}
	if errors.Is(err, ErrExtraction) {
		t.Error("IO failure must not match ErrExtraction")
	}
}

func assertEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%s should be empty, has %d entries", dir, len(entries))
	}
}
