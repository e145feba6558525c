package textutil

import "testing"

func TestSanitizeBaseName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"episode 1", "episode 1"},
		{"blink: part one", "blink- part one"},
		{"what?", "what"},
		{"  padded  ", "padded"},
		{"a/b\\c", "a-b-c"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeBaseName(tt.input); got != tt.expected {
			t.Errorf("SanitizeBaseName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
