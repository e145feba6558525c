package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriptsync/internal/align"
	"scriptsync/internal/config"
	"scriptsync/internal/logging"
	"scriptsync/internal/media"
	"scriptsync/internal/transcriptcache"
)

type fakeTranscriber struct {
	segments []align.Segment
	err      error
	calls    int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath, outputDir string) ([]align.Segment, error) {
	f.calls++
	return f.segments, f.err
}

func (f *fakeTranscriber) Model() string { return "base" }

type fakeTools struct {
	probeErr   error
	extractErr error
	extracted  string
}

func (f *fakeTools) Probe(ctx context.Context, path string) (media.ProbeResult, error) {
	if f.probeErr != nil {
		return media.ProbeResult{}, f.probeErr
	}
	return media.ProbeResult{Streams: []media.Stream{
		{Index: 0, CodecType: "video"},
		{Index: 1, CodecType: "audio"},
	}}, nil
}

func (f *fakeTools) ExtractAudio(ctx context.Context, source string, audioIndex int, dest string) error {
	if f.extractErr != nil {
		return f.extractErr
	}
	f.extracted = dest
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte("fake audio"), 0o644)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Paths.WorkDir = filepath.Join(dir, "work")
	cfg.Paths.CacheDir = filepath.Join(dir, "cache")
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	return &cfg
}

func testRunner(t *testing.T, cfg *config.Config, transcriber Transcriber, cache TranscriptStore) *Runner {
	t.Helper()
	runner, err := NewRunner(cfg, logging.NewNop(), cache)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	runner.WithTranscriber(transcriber)
	runner.WithMediaTools(&fakeTools{})
	return runner
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const fixtureScript = `JOHN: Hello there. How are you?

MARY: I am fine, thank you.
`

func fixtureSegments() []align.Segment {
	return []align.Segment{
		{Start: 0.0, End: 1.5, Text: "hello there"},
		{Start: 1.5, End: 3.0, Text: "how are you"},
		{Start: 3.0, End: 5.0, Text: "im fine thank you"},
	}
}

func TestRunAlignsScript(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	mediaPath := writeFixture(t, dir, "episode.mkv", "fake video")
	scriptPath := writeFixture(t, dir, "episode.txt", fixtureScript)

	runner := testRunner(t, cfg, &fakeTranscriber{segments: fixtureSegments()}, nil)
	result, err := runner.Run(context.Background(), Request{MediaPath: mediaPath, ScriptPath: scriptPath})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Passthrough {
		t.Error("script run should not be passthrough")
	}
	if result.Cues == 0 {
		t.Fatal("expected cues")
	}
	if result.Matched == 0 {
		t.Error("expected at least one matched segment")
	}
	if result.Segments != 3 {
		t.Errorf("segments = %d, want 3", result.Segments)
	}
	if result.DialogLines != 2 {
		t.Errorf("dialog lines = %d, want 2", result.DialogLines)
	}
	if result.Scores.High == 0 {
		t.Error("expected high-confidence matches for near-verbatim speech")
	}

	content, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "JOHN: Hello there.") {
		t.Errorf("output should carry script wording with speaker:\n%s", text)
	}
	if !strings.Contains(text, "00:00:00,000 --> 00:00:01,500") {
		t.Errorf("output should carry segment timing:\n%s", text)
	}
}

func TestRunPassthroughWithoutScript(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	mediaPath := writeFixture(t, dir, "episode.mkv", "fake video")

	runner := testRunner(t, cfg, &fakeTranscriber{segments: fixtureSegments()}, nil)
	result, err := runner.Run(context.Background(), Request{MediaPath: mediaPath})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Passthrough {
		t.Error("run without script should be passthrough")
	}
	if result.Cues != 3 {
		t.Errorf("cues = %d, want 3", result.Cues)
	}

	content, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "hello there") {
		t.Errorf("passthrough output should carry transcription text:\n%s", content)
	}
}

func TestRunNoDialog(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	mediaPath := writeFixture(t, dir, "episode.mkv", "fake video")
	scriptPath := writeFixture(t, dir, "notes.txt", "Stage directions only.\nNo speakers here.\n")

	runner := testRunner(t, cfg, &fakeTranscriber{segments: fixtureSegments()}, nil)
	_, err := runner.Run(context.Background(), Request{MediaPath: mediaPath, ScriptPath: scriptPath})
	if !errors.Is(err, ErrNoDialog) {
		t.Errorf("err = %v, want ErrNoDialog", err)
	}
}

func TestRunNoSegments(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	mediaPath := writeFixture(t, dir, "episode.mkv", "fake video")

	runner := testRunner(t, cfg, &fakeTranscriber{segments: nil}, nil)
	_, err := runner.Run(context.Background(), Request{MediaPath: mediaPath})
	if !errors.Is(err, ErrNoSegments) {
		t.Errorf("err = %v, want ErrNoSegments", err)
	}
}

func TestRunTranscriberFailure(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	mediaPath := writeFixture(t, dir, "episode.mkv", "fake video")

	runner := testRunner(t, cfg, &fakeTranscriber{err: errors.New("model load failed")}, nil)
	_, err := runner.Run(context.Background(), Request{MediaPath: mediaPath})
	if !errors.Is(err, ErrExternalTool) {
		t.Errorf("err = %v, want ErrExternalTool", err)
	}
}

func TestRunMissingMedia(t *testing.T) {
	cfg := testConfig(t)
	runner := testRunner(t, cfg, &fakeTranscriber{segments: fixtureSegments()}, nil)
	if _, err := runner.Run(context.Background(), Request{MediaPath: filepath.Join(t.TempDir(), "gone.mkv")}); err == nil {
		t.Error("expected error for missing media")
	}
}

func TestRunUsesTranscriptCache(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	mediaPath := writeFixture(t, dir, "episode.mkv", "fake video")

	store, err := transcriptcache.Open(filepath.Join(dir, "transcripts.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	transcriber := &fakeTranscriber{segments: fixtureSegments()}
	runner := testRunner(t, cfg, transcriber, store)

	first, err := runner.Run(context.Background(), Request{MediaPath: mediaPath})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}
	if transcriber.calls != 1 {
		t.Fatalf("transcriber calls = %d, want 1", transcriber.calls)
	}

	second, err := runner.Run(context.Background(), Request{MediaPath: mediaPath})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if transcriber.calls != 1 {
		t.Errorf("transcriber calls = %d, want 1 (cache should prevent re-run)", transcriber.calls)
	}
}

func TestRunOutputPathOverride(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	mediaPath := writeFixture(t, dir, "episode.mkv", "fake video")
	override := filepath.Join(dir, "custom.srt")

	runner := testRunner(t, cfg, &fakeTranscriber{segments: fixtureSegments()}, nil)
	result, err := runner.Run(context.Background(), Request{MediaPath: mediaPath, OutputPath: override})
	if err != nil {
		t.Fatal(err)
	}
	if result.OutputPath != override {
		t.Errorf("output path = %q, want %q", result.OutputPath, override)
	}
}

func TestAlignTranscriptFromJSON(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	transcriptPath := writeFixture(t, dir, "episode.json", `{
  "segments": [
    {"start": 0.0, "end": 1.5, "text": "hello there"},
    {"start": 1.5, "end": 3.0, "text": "how are you"}
  ]
}`)
	scriptPath := writeFixture(t, dir, "episode.txt", "JOHN: Hello there. How are you?\n")

	runner := testRunner(t, cfg, &fakeTranscriber{}, nil)
	result, err := runner.AlignTranscript(context.Background(), transcriptPath, scriptPath, "")
	if err != nil {
		t.Fatalf("AlignTranscript: %v", err)
	}
	if result.Cues != 2 {
		t.Errorf("cues = %d, want 2", result.Cues)
	}
	if result.OutputPath != filepath.Join(cfg.Paths.OutputDir, "episode.srt") {
		t.Errorf("output path = %q", result.OutputPath)
	}
}

func TestAlignTranscriptUnsupportedFormat(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	transcriptPath := writeFixture(t, dir, "episode.vtt", "WEBVTT\n")
	scriptPath := writeFixture(t, dir, "episode.txt", "JOHN: Hello.\n")

	runner := testRunner(t, cfg, &fakeTranscriber{}, nil)
	if _, err := runner.AlignTranscript(context.Background(), transcriptPath, scriptPath, ""); err == nil {
		t.Error("expected error for unsupported transcript format")
	}
}
