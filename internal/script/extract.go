package script

import (
	"regexp"
	"strings"
)

// DialogLine is one speaker block extracted from a script, in script order.
type DialogLine struct {
	Speaker string
	Text    string
}

// speakerLineRe matches a dialogue block opener: an all-caps speaker label of
// one or more words, an optional parenthetical aside, then a colon. Anything
// after the colon on the same line is the start of the utterance.
var speakerLineRe = regexp.MustCompile(`^([A-Z]+(?: [A-Z]+)*)(?: \([^)]*\))?:\s*(.*)$`)

// Parse extracts dialogue blocks from raw script text. An utterance runs
// until the next speaker label or end of input; embedded newlines are
// collapsed to single spaces and surrounding whitespace is trimmed. Blocks
// whose utterance is empty after trimming are dropped. The parenthetical
// aside on a label (a stage direction) is discarded.
//
// An empty result means the text contains no recognizable dialogue; callers
// treat that as a hard failure, not an empty script.
func Parse(text string) []DialogLine {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var out []DialogLine
	var speaker string
	var parts []string
	inBlock := false

	flush := func() {
		if !inBlock {
			return
		}
		joined := strings.TrimSpace(strings.Join(parts, " "))
		if joined != "" {
			out = append(out, DialogLine{Speaker: speaker, Text: joined})
		}
		inBlock = false
		parts = nil
	}

	for _, line := range lines {
		if m := speakerLineRe.FindStringSubmatch(line); m != nil {
			flush()
			speaker = strings.TrimSpace(m[1])
			parts = []string{strings.TrimSpace(m[2])}
			inBlock = true
			continue
		}
		if inBlock {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
	}
	flush()
	return out
}
