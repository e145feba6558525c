package srt

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriptsync/internal/align"
)

func TestFormatTimestampTruncates(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00:00,000"},
		{1.2345, "00:00:01,234"},
		{0.9999, "00:00:00,999"},
		{59.9996, "00:00:59,999"},
		{61.5, "00:01:01,500"},
		{3661.25, "01:01:01,250"},
		{-2, "00:00:00,000"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.expected {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("00:05:46,345")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if math.Abs(got-346.345) > 1e-9 {
		t.Errorf("ParseTimestamp = %v, want 346.345", got)
	}

	if _, err := ParseTimestamp("garbage"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
	if _, err := ParseTimestamp(""); err == nil {
		t.Error("expected error for empty timestamp")
	}
}

func TestRenderBlockFormat(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 0, End: 1.5, Text: "DOCTOR: Hello there."},
		{Index: 2, Start: 1.5, End: 3, Text: "SALLY: How are you?"},
	}
	want := "1\n00:00:00,000 --> 00:00:01,500\nDOCTOR: Hello there.\n\n2\n00:00:01,500 --> 00:00:03,000\nSALLY: How are you?\n\n"
	if got := Render(cues); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderFinalBlockTerminated(t *testing.T) {
	got := Render([]Cue{{Index: 1, Start: 0, End: 1, Text: "Only cue."}})
	if !strings.HasSuffix(got, "Only cue.\n\n") {
		t.Errorf("final block should end with a blank line, got %q", got)
	}

	// Rendered output must survive a parse round trip.
	cues := Parse(got)
	if len(cues) != 1 || cues[0].Text != "Only cue." {
		t.Errorf("round trip = %+v", cues)
	}
}

func TestFromSubtitlesSpeakerPrefix(t *testing.T) {
	subtitles := []align.Subtitle{
		{Start: 0, End: 1, Text: "Hello there.", Speaker: "DOCTOR", MatchScore: 1},
		{Start: 1, End: 2, Text: "No speaker here."},
	}

	cues := FromSubtitles(subtitles, true)
	if cues[0].Text != "DOCTOR: Hello there." {
		t.Errorf("cue 0 text = %q", cues[0].Text)
	}
	if cues[1].Text != "No speaker here." {
		t.Errorf("cue 1 text = %q", cues[1].Text)
	}

	cues = FromSubtitles(subtitles, false)
	if cues[0].Text != "Hello there." {
		t.Errorf("speaker prefix applied when disabled: %q", cues[0].Text)
	}
}

func TestFromSubtitlesSequentialIndex(t *testing.T) {
	subtitles := []align.Subtitle{
		{Start: 0, End: 1, Text: "a"},
		{Start: 5, End: 6, Text: "b"},
		{Start: 9, End: 10, Text: "c"},
	}
	cues := FromSubtitles(subtitles, false)
	for i, cue := range cues {
		if cue.Index != i+1 {
			t.Errorf("cue %d index = %d, want %d", i, cue.Index, i+1)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 346.345, End: 348.514, Text: "TACTICAL."},
		{Index: 2, Start: 366.282, End: 367.992, Text: "VISUAL.\nON SCREEN."},
	}
	path := filepath.Join(t.TempDir(), "test.srt")
	if err := WriteFile(path, cues); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(parsed))
	}
	if parsed[0].Index != 1 || math.Abs(parsed[0].Start-346.345) > 0.001 {
		t.Errorf("cue 0 = %+v", parsed[0])
	}
	if parsed[1].Text != "VISUAL.\nON SCREEN." {
		t.Errorf("cue 1 text = %q", parsed[1].Text)
	}
}

func TestParseSkipsMalformedBlocks(t *testing.T) {
	content := "not a number\n00:00:00,000 --> 00:00:01,000\nbad\n\n1\n00:00:00,000 --> 00:00:01,000\ngood\n"
	cues := Parse(content)
	if len(cues) != 1 || cues[0].Text != "good" {
		t.Errorf("Parse() = %+v, want single good cue", cues)
	}
}

func TestParseEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.srt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cues, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(cues) != 0 {
		t.Errorf("expected no cues, got %+v", cues)
	}
}
