package align

import (
	"strings"
	"sync"

	"scriptsync/internal/script"
	"scriptsync/internal/textutil"
)

// Alignment defaults, matching the tuning of the similarity ratio.
const (
	DefaultThreshold = 0.3
	DefaultWorkers   = 4
)

// Segment is a timestamped span of transcribed speech. The text is
// approximate but the timing is trustworthy.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Subtitle pairs a segment's timing with the exact text of the chunk chosen
// for it. MatchScore is the similarity that justified the assignment, or zero
// when the chunk was claimed through the fallback scan.
type Subtitle struct {
	Start      float64
	End        float64
	Text       string
	Speaker    string
	MatchScore float64
}

// Options controls alignment behavior. Zero values select the defaults.
type Options struct {
	// Threshold is the similarity a best candidate must exceed to be claimed.
	Threshold float64
	// Workers is the batch size: how many segments score concurrently before
	// their assignments are applied.
	Workers int
}

// proposal is one segment's scoring result: the best unconsumed chunk index
// (-1 when none qualified) and its score.
type proposal struct {
	index int
	score float64
}

// Align assigns each segment the unconsumed chunk its transcribed text most
// resembles, falling back to the next unused chunk in script order when the
// best candidate is below threshold or was claimed earlier in the same batch.
// Output order follows segment order. Segments left without any unconsumed
// chunk produce no subtitle, so the result may be shorter than segments.
func Align(chunks []script.Chunk, segments []Segment, opts Options) []Subtitle {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	lowered := make([]string, len(chunks))
	for i, chunk := range chunks {
		lowered[i] = strings.ToLower(chunk.Text)
	}

	consumed := make([]bool, len(chunks))
	subtitles := make([]Subtitle, 0, len(segments))

	for base := 0; base < len(segments); base += workers {
		batch := segments[base:min(base+workers, len(segments))]

		// Scoring phase: read-only over the consumption set.
		proposals := make([]proposal, len(batch))
		var wg sync.WaitGroup
		for i := range batch {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				proposals[i] = bestCandidate(batch[i].Text, lowered, consumed)
			}(i)
		}
		wg.Wait()

		// Assignment phase: sequential, in original segment order.
		for i, prop := range proposals {
			seg := batch[i]
			if prop.index >= 0 && prop.score > threshold && !consumed[prop.index] {
				consumed[prop.index] = true
				subtitles = append(subtitles, Subtitle{
					Start:      seg.Start,
					End:        seg.End,
					Text:       chunks[prop.index].Text,
					Speaker:    chunks[prop.index].Speaker,
					MatchScore: prop.score,
				})
				continue
			}
			// Same-batch collision or no candidate over threshold. A fallback
			// carries no similarity evidence even when it happens to fit, so
			// its score is zero. With the script exhausted the segment is
			// dropped.
			if idx, ok := claimFirstUnconsumed(consumed); ok {
				subtitles = append(subtitles, Subtitle{
					Start:   seg.Start,
					End:     seg.End,
					Text:    chunks[idx].Text,
					Speaker: chunks[idx].Speaker,
				})
			}
		}
	}
	return subtitles
}

// bestCandidate scans every chunk not yet consumed at the start of the phase
// and keeps the strictly best score, so ties resolve to the earliest chunk.
func bestCandidate(text string, lowered []string, consumed []bool) proposal {
	lowerText := strings.ToLower(text)
	best := proposal{index: -1}
	for i, chunkText := range lowered {
		if consumed[i] {
			continue
		}
		if score := textutil.Ratio(lowerText, chunkText); score > best.score {
			best = proposal{index: i, score: score}
		}
	}
	return best
}

// claimFirstUnconsumed marks and returns the lowest unconsumed chunk index.
// Both fallback call sites share it so collision and no-match behave
// identically.
func claimFirstUnconsumed(consumed []bool) (int, bool) {
	for i, used := range consumed {
		if !used {
			consumed[i] = true
			return i, true
		}
	}
	return -1, false
}
