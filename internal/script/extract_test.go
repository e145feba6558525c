package script

import (
	"reflect"
	"testing"
)

func TestParseTwoBlocks(t *testing.T) {
	text := "DOCTOR: Hello there.\n\nSALLY: How are you?"
	lines := Parse(text)
	want := []DialogLine{
		{Speaker: "DOCTOR", Text: "Hello there."},
		{Speaker: "SALLY", Text: "How are you?"},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("Parse() = %+v, want %+v", lines, want)
	}
}

func TestParseMultiWordSpeakerAndAside(t *testing.T) {
	text := "OLD WOMAN (whispering): Don't blink.\nDOCTOR (urgent, to camera): Blink and you're dead."
	lines := Parse(text)
	if len(lines) != 2 {
		t.Fatalf("expected 2 dialogue lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].Speaker != "OLD WOMAN" {
		t.Errorf("speaker = %q, want OLD WOMAN", lines[0].Speaker)
	}
	if lines[0].Text != "Don't blink." {
		t.Errorf("text = %q, want aside discarded", lines[0].Text)
	}
	if lines[1].Speaker != "DOCTOR" || lines[1].Text != "Blink and you're dead." {
		t.Errorf("second line = %+v", lines[1])
	}
}

func TestParseMultilineUtterance(t *testing.T) {
	text := "SALLY: I'm clever and I'm listening.\nAnd don't patronise me\n   because people have died.\nDOCTOR: Fair enough."
	lines := Parse(text)
	if len(lines) != 2 {
		t.Fatalf("expected 2 dialogue lines, got %d", len(lines))
	}
	want := "I'm clever and I'm listening. And don't patronise me because people have died."
	if lines[0].Text != want {
		t.Errorf("text = %q, want %q", lines[0].Text, want)
	}
}

func TestParseDropsEmptyUtterance(t *testing.T) {
	text := "DOCTOR:\nSALLY: Something."
	lines := Parse(text)
	if len(lines) != 1 || lines[0].Speaker != "SALLY" {
		t.Fatalf("expected only SALLY block, got %+v", lines)
	}
}

func TestParseNoDialog(t *testing.T) {
	tests := []string{
		"",
		"Just some prose without any speakers.",
		"lowercase: not a speaker label",
		"INTERIOR HOUSE NIGHT",
	}
	for _, text := range tests {
		if lines := Parse(text); len(lines) != 0 {
			t.Errorf("Parse(%q) = %+v, want empty", text, lines)
		}
	}
}

func TestParseCRLF(t *testing.T) {
	lines := Parse("DOCTOR: Hello there.\r\n\r\nSALLY: Hi.")
	if len(lines) != 2 {
		t.Fatalf("expected 2 dialogue lines, got %d", len(lines))
	}
	if lines[0].Text != "Hello there." {
		t.Errorf("text = %q", lines[0].Text)
	}
}
