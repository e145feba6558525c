package srt

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"scriptsync/internal/align"
)

// Cue represents a single subtitle cue with timing and text.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// FromSubtitles converts aligned subtitles into cues numbered from 1. When
// includeSpeaker is set and a subtitle carries a speaker, the text is
// prefixed with "SPEAKER: ".
func FromSubtitles(subtitles []align.Subtitle, includeSpeaker bool) []Cue {
	cues := make([]Cue, 0, len(subtitles))
	for i, sub := range subtitles {
		text := sub.Text
		if includeSpeaker && sub.Speaker != "" {
			text = sub.Speaker + ": " + text
		}
		cues = append(cues, Cue{
			Index: i + 1,
			Start: sub.Start,
			End:   sub.End,
			Text:  text,
		})
	}
	return cues
}

// Render produces the file content for the given cues. Every block,
// including the last, ends with a blank line.
func Render(cues []Cue) string {
	var sb strings.Builder
	for _, cue := range cues {
		sb.WriteString(strconv.Itoa(cue.Index))
		sb.WriteString("\n")
		sb.WriteString(FormatTimestamp(cue.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(cue.End))
		sb.WriteString("\n")
		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// WriteFile writes cues to path in SubRip form.
func WriteFile(path string, cues []Cue) error {
	if err := os.WriteFile(path, []byte(Render(cues)), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// FormatTimestamp renders seconds as HH:MM:SS,mmm. Milliseconds are
// truncated so the emitted timestamp never runs ahead of the source timing.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	msTotal := int(seconds * 1000)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp converts an SRT timestamp into seconds. A period separator
// is accepted in place of the standard comma.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// Parse reads cues from SRT file content. Malformed blocks are skipped.
func Parse(content string) []Cue {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if content == "" {
		return nil
	}

	var cues []Cue
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			continue
		}
		parts := strings.Split(lines[1], "-->")
		if len(parts) != 2 {
			continue
		}
		start, err := ParseTimestamp(parts[0])
		if err != nil {
			continue
		}
		end, err := ParseTimestamp(parts[1])
		if err != nil {
			continue
		}
		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}
	return cues
}

// ParseFile reads cues from an SRT file on disk.
func ParseFile(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return Parse(string(data)), nil
}
