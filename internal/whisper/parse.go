package whisper

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"scriptsync/internal/align"
)

type payloadSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type payload struct {
	Segments []payloadSegment `json:"segments"`
}

// ParseSegments converts a whisper JSON result into timed segments. Segment
// text is trimmed; segments whose text is empty after trimming are dropped.
func ParseSegments(data []byte) ([]align.Segment, error) {
	var result payload
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}
	segments := make([]align.Segment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, align.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  text,
		})
	}
	return segments, nil
}

// ParseSegmentsFile reads and parses a whisper JSON result from disk.
func ParseSegmentsFile(path string) ([]align.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSegments(data)
}
